package perftests

import (
	"context"
	"fmt"
	"time"

	bidding "vehicle-auctions/internal/biddingService"
	"vehicle-auctions/internal/events"
	model "vehicle-auctions/internal/models"
	"vehicle-auctions/internal/repository"
	settlement "vehicle-auctions/internal/settlementService"

	"code.cloudfoundry.org/clock"
)

const benchManager = "manager_bench"

// stack is the service layer over the in-memory repository
type stack struct {
	repo       *repository.MemoryRepo
	bidding    *bidding.BiddingService
	settlement *settlement.SettlementService
}

func newStack() *stack {
	repo := repository.NewMemoryRepo()
	clk := clock.NewClock()
	return &stack{
		repo:       repo,
		bidding:    bidding.NewBiddingService(repo, events.Discard{}, clk),
		settlement: settlement.NewSettlementService(repo, events.Discard{}, clk, settlement.DefaultOptions()),
	}
}

func auctionID(i int) string { return fmt.Sprintf("auction_%d", i) }

// addLiveAuctions seeds n auctions that are already accepting bids
func (s *stack) addLiveAuctions(n int, startingPrice int64) {
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		s.repo.AddAuction(model.AuctionRequest{
			ID:                     auctionID(i),
			SellerID:               fmt.Sprintf("seller_%d", i%10),
			VehicleName:            fmt.Sprintf("Vehicle %d", i),
			StartingPrice:          startingPrice,
			Status:                 model.ReviewApproved,
			StartedAuction:         model.StartedYes,
			AssignedAuctionManager: benchManager,
			CreatedAt:              now,
			UpdatedAt:              now,
		})
	}
}

// bidOn places one opening bid on each of the first n auctions
func (s *stack) bidOn(n int, amount int64) error {
	ctx := context.Background()
	for i := 0; i < n; i++ {
		if _, err := s.bidding.PlaceBid(ctx, auctionID(i), fmt.Sprintf("buyer_%d", i), amount); err != nil {
			return err
		}
	}
	return nil
}
