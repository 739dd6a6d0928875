// Package sweeper watches for winners that let their payment deadline pass
// and announces the auctions as eligible for re-auction. It never changes
// auction state; re-auctioning stays a manager decision.
package sweeper

import (
	"context"
	"time"

	"vehicle-auctions/internal/events"
	"vehicle-auctions/internal/models"
	"vehicle-auctions/utils"

	"code.cloudfoundry.org/clock"
)

// OverdueLister is satisfied by the settlement service
type OverdueLister interface {
	ListOverdue(ctx context.Context, managerID string) ([]models.AuctionRequest, error)
}

type Sweeper struct {
	lister    OverdueLister
	publisher events.Publisher
	clock     clock.Clock
	interval  time.Duration

	// notified holds the deadline already announced per auction
	notified map[string]time.Time
}

func New(lister OverdueLister, publisher events.Publisher, clk clock.Clock, interval time.Duration) *Sweeper {
	return &Sweeper{
		lister:    lister,
		publisher: publisher,
		clock:     clk,
		interval:  interval,
		notified:  make(map[string]time.Time),
	}
}

// Run sweeps once immediately and then every interval until ctx is done
func (s *Sweeper) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	utils.Info("sweeper: monitoring overdue payments", map[string]any{"interval": s.interval.String()})
	s.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			utils.Info("sweeper: stopped", nil)
			return
		case <-ticker.C():
			s.Sweep(ctx)
		}
	}
}

// Sweep publishes payment_overdue once per auction deadline and returns how many were published
func (s *Sweeper) Sweep(ctx context.Context) int {
	overdue, err := s.lister.ListOverdue(ctx, "")
	if err != nil {
		utils.Error("sweeper: failed to list overdue auctions", map[string]any{"error": err.Error()})
		return 0
	}

	seen := make(map[string]struct{}, len(overdue))
	published := 0
	for _, a := range overdue {
		seen[a.ID] = struct{}{}
		if a.PaymentDeadline == nil {
			continue
		}
		if last, ok := s.notified[a.ID]; ok && last.Equal(*a.PaymentDeadline) {
			continue
		}

		s.publisher.Publish(events.Event{
			Type:      events.PaymentOverdue,
			AuctionID: a.ID,
			Data: map[string]any{
				"winner_id":        a.WinnerID,
				"payment_deadline": a.PaymentDeadline,
				"auction_manager":  a.AssignedAuctionManager,
			},
			At: s.clock.Now().UTC(),
		})
		s.notified[a.ID] = *a.PaymentDeadline
		published++

		utils.Warn("sweeper: payment overdue", map[string]any{
			"auction_id":       a.ID,
			"winner_id":        a.WinnerID,
			"payment_deadline": a.PaymentDeadline.Format(time.RFC3339),
		})
	}

	// forget auctions that were paid or re-auctioned
	for id := range s.notified {
		if _, ok := seen[id]; !ok {
			delete(s.notified, id)
		}
	}
	return published
}
