// Package lifecycle holds the auction state machine. Every handler that
// changes started_auction or auction_stopped goes through Next and Apply so
// illegal transitions are rejected in one place.
package lifecycle

import (
	"fmt"

	"vehicle-auctions/internal/auctionerrors"
	"vehicle-auctions/internal/models"
)

// Phase is the tagged state derived from an auction's stored fields
type Phase string

const (
	PhaseInReview Phase = "in_review"
	PhaseRejected Phase = "rejected"
	PhaseReady    Phase = "ready"
	PhaseLive     Phase = "live"
	PhaseEnded    Phase = "ended"
)

type Action string

const (
	ActionStart     Action = "start"
	ActionBid       Action = "bid"
	ActionStop      Action = "stop"
	ActionReauction Action = "reauction"
)

var transitions = map[Phase]map[Action]Phase{
	PhaseReady: {
		ActionStart: PhaseLive,
	},
	PhaseLive: {
		ActionStart: PhaseLive,
		ActionBid:   PhaseLive,
		ActionStop:  PhaseEnded,
	},
	PhaseEnded: {
		ActionReauction: PhaseLive,
	},
}

// PhaseOf derives the phase of an auction
func PhaseOf(a models.AuctionRequest) Phase {
	switch a.Status {
	case models.ReviewApproved:
	case models.ReviewRejected:
		return PhaseRejected
	default:
		return PhaseInReview
	}

	if a.AuctionStopped || a.StartedAuction == models.StartedEnded {
		return PhaseEnded
	}
	if a.StartedAuction == models.StartedYes {
		return PhaseLive
	}
	return PhaseReady
}

// Next returns the phase reached by applying action to an auction, or the
// specific invalid-state error for the rejected transition.
func Next(a models.AuctionRequest, action Action) (Phase, error) {
	from := PhaseOf(a)
	if to, ok := transitions[from][action]; ok {
		return to, nil
	}
	return from, rejection(a, from, action)
}

func rejection(a models.AuctionRequest, from Phase, action Action) error {
	if from == PhaseInReview || from == PhaseRejected {
		return auctionerrors.ErrAuctionNotApproved
	}

	switch action {
	case ActionStart:
		return auctionerrors.ErrAuctionEnded
	case ActionBid:
		return auctionerrors.ErrAuctionClosed
	case ActionStop:
		if from == PhaseEnded {
			return auctionerrors.ErrAuctionAlreadyStopped
		}
		return auctionerrors.ErrAuctionNotStarted
	case ActionReauction:
		// a retried re-auction finds the auction already live again
		if from == PhaseLive && a.IsReauctioned {
			return auctionerrors.ErrAlreadyReauctioned
		}
		return auctionerrors.ErrAuctionNotEnded
	}
	return fmt.Errorf("%w: unknown action %q", auctionerrors.ErrInvalidState, action)
}

// Apply writes phase back into the stored status fields. Review phases are
// owned by the review flow and are left untouched.
func Apply(a *models.AuctionRequest, to Phase) {
	switch to {
	case PhaseReady:
		a.StartedAuction = models.StartedNo
		a.AuctionStopped = false
	case PhaseLive:
		a.StartedAuction = models.StartedYes
		a.AuctionStopped = false
	case PhaseEnded:
		a.StartedAuction = models.StartedEnded
		a.AuctionStopped = true
	}
}
