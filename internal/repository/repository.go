package repository

import (
	"context"

	model "vehicle-auctions/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDB defines the storage interface for auctions, bids and purchases
type AuctionDB interface {
	// InAuctionTx runs fn with exclusive access to a single auction and the
	// rows hanging off it. Writes made through tx are committed only when fn
	// returns nil. Returns ErrAuctionNotFound when the auction does not exist.
	InAuctionTx(ctx context.Context, auctionID string, fn func(tx AuctionTx) error) error

	GetAuction(ctx context.Context, auctionID string) (model.AuctionRequest, error)
	GetBidsByAuction(ctx context.Context, auctionID string) ([]model.AuctionBid, error)
	GetCurrentBid(ctx context.Context, auctionID string) (model.AuctionBid, error)
	// GetPastBids returns up to limit non-current bids, newest first, skipping blocked buyers
	GetPastBids(ctx context.Context, auctionID string, limit int) ([]model.AuctionBid, error)
	CountBids(ctx context.Context, auctionID string) (int, error)
	GetPurchase(ctx context.Context, auctionID string) (model.Purchase, error)
	GetBuyer(ctx context.Context, buyerID string) (model.Buyer, error)
	// ListAwaitingPayment returns ended auctions with a winner whose purchase is still pending
	ListAwaitingPayment(ctx context.Context) ([]model.AuctionRequest, error)
	GetNotifications(ctx context.Context, userID string) ([]model.Notification, error)
	GetConversation(ctx context.Context, auctionID string) (model.Conversation, error)

	Health(ctx context.Context) map[string]string
	Close() error
}

// AuctionTx is the unit of work handed to InAuctionTx callbacks
type AuctionTx interface {
	// Auction returns the locked auction as of the last SaveAuction
	Auction() model.AuctionRequest
	SaveAuction(auction model.AuctionRequest) error

	CurrentBid() (model.AuctionBid, error)
	// PastBids is GetPastBids read under the auction lock
	PastBids(limit int) ([]model.AuctionBid, error)
	// PlaceCurrentBid demotes the previous current bid and stores bid as the new one
	PlaceCurrentBid(bid model.AuctionBid) error
	DeleteBids() (int, error)

	Purchase() (model.Purchase, error)
	CreatePurchase(purchase model.Purchase) error
	UpdatePurchase(purchase model.Purchase) error
	DeletePurchase() error

	Buyer(buyerID string) (model.Buyer, error)
	ReportBuyer(buyerID, reason string) error
	AddNotification(n model.Notification) error
	OpenConversation(c model.Conversation) error
}
