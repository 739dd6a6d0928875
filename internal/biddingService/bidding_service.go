package bidding

import (
	"context"
	"errors"
	"fmt"

	"vehicle-auctions/internal/auctionerrors"
	"vehicle-auctions/internal/events"
	"vehicle-auctions/internal/lifecycle"
	"vehicle-auctions/internal/models"
	"vehicle-auctions/internal/repository"
	"vehicle-auctions/utils"

	"code.cloudfoundry.org/clock"
)

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	repo      repository.AuctionDB
	publisher events.Publisher
	clock     clock.Clock
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, publisher events.Publisher, clk clock.Clock) *BiddingService {
	return &BiddingService{
		repo:      repo,
		publisher: publisher,
		clock:     clk,
	}
}

// PlaceBid validates and records a buyer's bid, making it the auction's current bid
func (s *BiddingService) PlaceBid(ctx context.Context, auctionID, buyerID string, amount int64) (models.AuctionBid, error) {
	if auctionID == "" || buyerID == "" {
		return models.AuctionBid{}, fmt.Errorf("service: %w - missing auctionID or buyerID", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return models.AuctionBid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	bid := models.AuctionBid{
		ID:        utils.GenerateID(),
		AuctionID: auctionID,
		BuyerID:   buyerID,
		BidAmount: amount,
	}

	err := s.repo.InAuctionTx(ctx, auctionID, func(tx repository.AuctionTx) error {
		if _, err := lifecycle.Next(tx.Auction(), lifecycle.ActionBid); err != nil {
			return err
		}
		if err := validateBid(tx, buyerID, amount); err != nil {
			return err
		}
		bid.BidTime = s.clock.Now().UTC()
		return tx.PlaceCurrentBid(bid)
	})
	if err != nil {
		return models.AuctionBid{}, fmt.Errorf("service: failed to place bid on auction %s by buyer %s: %w", auctionID, buyerID, err)
	}

	bid.IsCurrentBid = true
	s.publisher.Publish(events.Event{
		Type:      events.BidPlaced,
		AuctionID: auctionID,
		Data: map[string]any{
			"bid_id":   bid.ID,
			"buyer_id": bid.BuyerID,
			"amount":   bid.BidAmount,
		},
		At: bid.BidTime,
	})
	return bid, nil
}

// validateBid checks buyer standing and the amount against the current bid
func validateBid(tx repository.AuctionTx, buyerID string, amount int64) error {
	buyer, err := tx.Buyer(buyerID)
	if err != nil && !errors.Is(err, auctionerrors.ErrBuyerNotFound) {
		return fmt.Errorf("failed to load buyer: %w", err)
	}
	if buyer.IsBlocked {
		return fmt.Errorf("%w - buyer %s", auctionerrors.ErrBuyerBlocked, buyerID)
	}

	current, err := tx.CurrentBid()
	switch {
	case err == nil:
		if amount <= current.BidAmount {
			return fmt.Errorf("%w - current bid is %d", auctionerrors.ErrBidTooLow, current.BidAmount)
		}
	case errors.Is(err, auctionerrors.ErrNoBids):
		if start := tx.Auction().StartingPrice; amount < start {
			return fmt.Errorf("%w - starting price is %d", auctionerrors.ErrBidTooLow, start)
		}
	default:
		return fmt.Errorf("failed to check current bid: %w", err)
	}
	return nil
}

// GetBidsForAuction returns all bids for an auction, newest first
func (s *BiddingService) GetBidsForAuction(ctx context.Context, auctionID string) ([]models.AuctionBid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}

	return bids, nil
}

// GetCurrentBid returns the bid currently leading an auction
func (s *BiddingService) GetCurrentBid(ctx context.Context, auctionID string) (models.AuctionBid, error) {
	if auctionID == "" {
		return models.AuctionBid{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	bid, err := s.repo.GetCurrentBid(ctx, auctionID)
	if err != nil {
		return models.AuctionBid{}, fmt.Errorf("service: failed to get current bid for auction %s: %w", auctionID, err)
	}

	return bid, nil
}
