package auctionerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrNoBids           = errors.New("no bids found for auction")
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrPurchaseExists   = errors.New("purchase already exists for auction")
	ErrBuyerNotFound    = errors.New("buyer not found")
	ErrVersionConflict  = errors.New("auction was modified concurrently")
)

// business logic errors
var (
	ErrInvalidBid    = errors.New("invalid bid")
	ErrBidTooLow     = errors.New("bid amount too low")
	ErrBuyerBlocked  = errors.New("buyer is blocked")
	ErrNotAuthorized = errors.New("auction is not assigned to caller")

	ErrDeadlineNotPassed       = errors.New("payment deadline has not passed")
	ErrPaymentAlreadyCompleted = errors.New("payment already completed")
	ErrPaymentDeadlinePassed   = errors.New("payment deadline has passed")
)

// ErrInvalidState is wrapped by every lifecycle transition error.
var ErrInvalidState = errors.New("invalid auction state")

var (
	ErrAuctionNotApproved    = fmt.Errorf("%w: auction is not approved", ErrInvalidState)
	ErrAuctionNotStarted     = fmt.Errorf("%w: auction has not started", ErrInvalidState)
	ErrAuctionAlreadyStopped = fmt.Errorf("%w: auction already stopped", ErrInvalidState)
	ErrAuctionEnded          = fmt.Errorf("%w: auction has ended", ErrInvalidState)
	ErrAuctionClosed         = fmt.Errorf("%w: auction is not accepting bids", ErrInvalidState)
	ErrAuctionNotEnded       = fmt.Errorf("%w: auction has not ended", ErrInvalidState)
	ErrAlreadyReauctioned    = fmt.Errorf("%w: auction already re-auctioned", ErrInvalidState)
)
