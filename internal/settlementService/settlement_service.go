// Package settlement implements the auction manager's settlement flow:
// starting and stopping auctions, recording the winner and the purchase,
// and re-opening auctions whose winner failed to pay in time.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vehicle-auctions/internal/auctionerrors"
	"vehicle-auctions/internal/events"
	"vehicle-auctions/internal/lifecycle"
	"vehicle-auctions/internal/models"
	"vehicle-auctions/internal/repository"
	"vehicle-auctions/utils"

	"code.cloudfoundry.org/clock"
)

// Options holds the settlement windows
type Options struct {
	PaymentWindow time.Duration
	ChatWindow    time.Duration
	PastBidsLimit int
}

func DefaultOptions() Options {
	return Options{
		PaymentWindow: 4 * 24 * time.Hour,
		ChatWindow:    5 * 24 * time.Hour,
		PastBidsLimit: 3,
	}
}

// StopResult describes how an auction closed
type StopResult struct {
	HasWinner       bool
	WinnerID        *string
	FinalPrice      *int64
	PaymentDeadline *time.Time
	PurchaseID      string
}

// ReauctionResult describes a re-opened auction
type ReauctionResult struct {
	Auction         models.AuctionRequest
	ReportedBuyerID *string
	ClearedBids     int
}

// BidsView is the manager's view of an auction's bidding
type BidsView struct {
	Auction    models.AuctionRequest
	CurrentBid *models.AuctionBid
	PastBids   []models.AuctionBid
}

// SettlementService defines the business logic for settling auctions
type SettlementService struct {
	repo      repository.AuctionDB
	publisher events.Publisher
	clock     clock.Clock
	opts      Options
}

// NewSettlementService creates a new SettlementService instance
func NewSettlementService(repo repository.AuctionDB, publisher events.Publisher, clk clock.Clock, opts Options) *SettlementService {
	return &SettlementService{
		repo:      repo,
		publisher: publisher,
		clock:     clk,
		opts:      opts,
	}
}

// StartAuction opens an approved auction for bidding. Starting a live auction is a no-op.
func (s *SettlementService) StartAuction(ctx context.Context, auctionID, managerID string) error {
	var now time.Time
	started := false

	err := s.repo.InAuctionTx(ctx, auctionID, func(tx repository.AuctionTx) error {
		now = s.clock.Now().UTC()
		a := tx.Auction()
		if err := authorize(a, managerID); err != nil {
			return err
		}
		to, err := lifecycle.Next(a, lifecycle.ActionStart)
		if err != nil {
			return err
		}
		if lifecycle.PhaseOf(a) == to {
			return nil
		}

		lifecycle.Apply(&a, to)
		a.UpdatedAt = now
		started = true
		return tx.SaveAuction(a)
	})
	if err != nil {
		return fmt.Errorf("service: failed to start auction %s: %w", auctionID, err)
	}

	if started {
		s.publisher.Publish(events.Event{Type: events.AuctionStarted, AuctionID: auctionID, At: now})
	}
	return nil
}

// StopAuction closes a live auction. The current bid, if any, wins: the
// winner, price and payment deadline are recorded and a pending purchase is
// created in the same transaction.
func (s *SettlementService) StopAuction(ctx context.Context, auctionID, managerID string) (StopResult, error) {
	var now time.Time
	var res StopResult

	err := s.repo.InAuctionTx(ctx, auctionID, func(tx repository.AuctionTx) error {
		now = s.clock.Now().UTC()
		res = StopResult{}

		a := tx.Auction()
		if err := authorize(a, managerID); err != nil {
			return err
		}
		to, err := lifecycle.Next(a, lifecycle.ActionStop)
		if err != nil {
			return err
		}
		lifecycle.Apply(&a, to)
		a.UpdatedAt = now
		a.WinnerID, a.FinalPurchasePrice, a.PaymentDeadline = nil, nil, nil

		current, err := tx.CurrentBid()
		if errors.Is(err, auctionerrors.ErrNoBids) {
			return tx.SaveAuction(a)
		}
		if err != nil {
			return err
		}

		winner := current.BuyerID
		price := current.BidAmount
		deadline := now.Add(s.opts.PaymentWindow)
		a.WinnerID = &winner
		a.FinalPurchasePrice = &price
		a.PaymentDeadline = &deadline
		if err := tx.SaveAuction(a); err != nil {
			return err
		}

		purchase := models.Purchase{
			ID:            utils.GenerateID(),
			AuctionID:     a.ID,
			BuyerID:       winner,
			SellerID:      a.SellerID,
			PurchasePrice: price,
			PaymentStatus: models.PaymentPending,
			CreatedAt:     now,
		}
		if err := tx.CreatePurchase(purchase); err != nil {
			return err
		}

		msg := fmt.Sprintf("You won the auction for %s at %d. Complete the payment before %s.",
			vehicleName(a), price, deadline.Format(time.RFC3339))
		if err := tx.AddNotification(notice(winner, msg, "/buyer/purchases/"+a.ID+"/pay", now)); err != nil {
			return err
		}
		if err := tx.OpenConversation(models.Conversation{
			ID:        utils.GenerateID(),
			AuctionID: a.ID,
			BuyerID:   winner,
			SellerID:  a.SellerID,
			OpenedAt:  now,
			ExpiresAt: now.Add(s.opts.ChatWindow),
		}); err != nil {
			return err
		}

		res = StopResult{
			HasWinner:       true,
			WinnerID:        &winner,
			FinalPrice:      &price,
			PaymentDeadline: &deadline,
			PurchaseID:      purchase.ID,
		}
		return nil
	})
	if err != nil {
		return StopResult{}, fmt.Errorf("service: failed to stop auction %s: %w", auctionID, err)
	}

	data := map[string]any{"has_winner": res.HasWinner}
	if res.HasWinner {
		data["winner_id"] = *res.WinnerID
		data["final_purchase_price"] = *res.FinalPrice
		data["payment_deadline"] = *res.PaymentDeadline
	}
	s.publisher.Publish(events.Event{Type: events.AuctionStopped, AuctionID: auctionID, Data: data, At: now})
	return res, nil
}

// ReAuction re-opens an ended auction. When the auction had a winner, the
// payment deadline must have passed without payment; the winner is marked as
// the failed buyer and reported. All bids and the purchase are removed.
func (s *SettlementService) ReAuction(ctx context.Context, auctionID, managerID string) (ReauctionResult, error) {
	var now time.Time
	var res ReauctionResult

	err := s.repo.InAuctionTx(ctx, auctionID, func(tx repository.AuctionTx) error {
		now = s.clock.Now().UTC()
		res = ReauctionResult{}

		a := tx.Auction()
		if err := authorize(a, managerID); err != nil {
			return err
		}
		to, err := lifecycle.Next(a, lifecycle.ActionReauction)
		if err != nil {
			return err
		}

		if a.HasWinner() {
			purchase, err := tx.Purchase()
			switch {
			case err == nil && purchase.PaymentStatus == models.PaymentCompleted:
				return auctionerrors.ErrPaymentAlreadyCompleted
			case err != nil && !errors.Is(err, auctionerrors.ErrPurchaseNotFound):
				return err
			}
			if a.PaymentDeadline != nil && now.Before(*a.PaymentDeadline) {
				return fmt.Errorf("%w - deadline is %s", auctionerrors.ErrDeadlineNotPassed, a.PaymentDeadline.Format(time.RFC3339))
			}

			defaulter := *a.WinnerID
			a.PaymentFailed = true
			a.FailedBuyerID = &defaulter

			reason := fmt.Sprintf("Did not complete payment for auction %s before the deadline", a.ID)
			if err := tx.ReportBuyer(defaulter, reason); err != nil {
				return err
			}
			msg := fmt.Sprintf("Your win on %s was cancelled because payment was not completed in time.", vehicleName(a))
			if err := tx.AddNotification(notice(defaulter, msg, "", now)); err != nil {
				return err
			}
			res.ReportedBuyerID = &defaulter
		}

		lifecycle.Apply(&a, to)
		a.WinnerID, a.FinalPurchasePrice, a.PaymentDeadline = nil, nil, nil
		a.IsReauctioned = true
		a.ReauctionCount++
		a.UpdatedAt = now
		if err := tx.SaveAuction(a); err != nil {
			return err
		}

		cleared, err := tx.DeleteBids()
		if err != nil {
			return err
		}
		if err := tx.DeletePurchase(); err != nil {
			return err
		}

		res.Auction = tx.Auction()
		res.ClearedBids = cleared
		return nil
	})
	if err != nil {
		return ReauctionResult{}, fmt.Errorf("service: failed to re-auction %s: %w", auctionID, err)
	}

	data := map[string]any{"reauction_count": res.Auction.ReauctionCount}
	if res.ReportedBuyerID != nil {
		data["failed_buyer_id"] = *res.ReportedBuyerID
	}
	s.publisher.Publish(events.Event{Type: events.AuctionReauctioned, AuctionID: auctionID, Data: data, At: now})
	return res, nil
}

// ViewBids returns the auction with its current bid and most recent past bids,
// all read under the auction lock so a concurrent bid cannot split the view.
func (s *SettlementService) ViewBids(ctx context.Context, auctionID, managerID string) (BidsView, error) {
	var view BidsView

	err := s.repo.InAuctionTx(ctx, auctionID, func(tx repository.AuctionTx) error {
		view = BidsView{Auction: tx.Auction()}
		if err := authorize(view.Auction, managerID); err != nil {
			return err
		}

		current, err := tx.CurrentBid()
		switch {
		case err == nil:
			view.CurrentBid = &current
		case !errors.Is(err, auctionerrors.ErrNoBids):
			return fmt.Errorf("failed to get current bid: %w", err)
		}

		past, err := tx.PastBids(s.opts.PastBidsLimit)
		if err != nil {
			return fmt.Errorf("failed to get past bids: %w", err)
		}
		view.PastBids = past
		return nil
	})
	if err != nil {
		return BidsView{}, fmt.Errorf("service: failed to view bids for auction %s: %w", auctionID, err)
	}
	return view, nil
}

// CompletePayment marks the winner's purchase as paid
func (s *SettlementService) CompletePayment(ctx context.Context, auctionID, buyerID string) (models.Purchase, error) {
	var now time.Time
	var paid models.Purchase

	err := s.repo.InAuctionTx(ctx, auctionID, func(tx repository.AuctionTx) error {
		now = s.clock.Now().UTC()
		p, err := tx.Purchase()
		if err != nil {
			return err
		}
		if p.BuyerID != buyerID {
			return fmt.Errorf("%w - purchase belongs to another buyer", auctionerrors.ErrNotAuthorized)
		}
		if p.PaymentStatus == models.PaymentCompleted {
			return auctionerrors.ErrPaymentAlreadyCompleted
		}
		a := tx.Auction()
		if a.PaymentDeadline != nil && now.After(*a.PaymentDeadline) {
			return auctionerrors.ErrPaymentDeadlinePassed
		}

		p.PaymentStatus = models.PaymentCompleted
		p.CompletedAt = &now
		if err := tx.UpdatePurchase(p); err != nil {
			return err
		}

		msg := fmt.Sprintf("Payment of %d for %s has been completed.", p.PurchasePrice, vehicleName(a))
		if err := tx.AddNotification(notice(p.SellerID, msg, "", now)); err != nil {
			return err
		}
		paid = p
		return nil
	})
	if err != nil {
		return models.Purchase{}, fmt.Errorf("service: failed to complete payment for auction %s: %w", auctionID, err)
	}

	s.publisher.Publish(events.Event{
		Type:      events.PaymentCompleted,
		AuctionID: auctionID,
		Data:      map[string]any{"purchase_id": paid.ID, "buyer_id": paid.BuyerID},
		At:        now,
	})
	return paid, nil
}

// ListOverdue returns ended auctions whose winner let the payment deadline
// pass. An empty managerID lists overdue auctions for every manager.
func (s *SettlementService) ListOverdue(ctx context.Context, managerID string) ([]models.AuctionRequest, error) {
	awaiting, err := s.repo.ListAwaitingPayment(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions awaiting payment: %w", err)
	}

	now := s.clock.Now()
	overdue := []models.AuctionRequest{}
	for _, a := range awaiting {
		if a.PaymentDeadline == nil || now.Before(*a.PaymentDeadline) {
			continue
		}
		if managerID != "" && a.AssignedAuctionManager != managerID {
			continue
		}
		overdue = append(overdue, a)
	}
	return overdue, nil
}

func authorize(a models.AuctionRequest, managerID string) error {
	if managerID == "" || a.AssignedAuctionManager != managerID {
		return fmt.Errorf("%w - auction %s", auctionerrors.ErrNotAuthorized, a.ID)
	}
	return nil
}

func notice(userID, message, link string, at time.Time) models.Notification {
	return models.Notification{
		ID:        utils.GenerateID(),
		UserID:    userID,
		Message:   message,
		Link:      link,
		CreatedAt: at,
	}
}

func vehicleName(a models.AuctionRequest) string {
	if a.VehicleName == "" {
		return "auction " + a.ID
	}
	return a.VehicleName
}
