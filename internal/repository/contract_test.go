package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"vehicle-auctions/internal/auctionerrors"
	model "vehicle-auctions/internal/models"

	"github.com/stretchr/testify/require"
)

// seeder inserts fixtures that normally come from flows outside this service
type seeder interface {
	seedAuction(t *testing.T, a model.AuctionRequest)
	seedBuyer(t *testing.T, b model.Buyer)
}

// Helper to create a live auction
func newAuction(id, managerID string) model.AuctionRequest {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return model.AuctionRequest{
		ID:                     id,
		SellerID:               "seller-" + id,
		VehicleName:            "Vehicle " + id,
		Year:                   2019,
		Mileage:                42000,
		StartingPrice:          50,
		Status:                 model.ReviewApproved,
		StartedAuction:         model.StartedYes,
		AssignedAuctionManager: managerID,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// Helper to create a new bid
func newBid(bidID, auctionID, buyerID string, amount int64, at time.Time) model.AuctionBid {
	return model.AuctionBid{
		ID:        bidID,
		AuctionID: auctionID,
		BuyerID:   buyerID,
		BidAmount: amount,
		BidTime:   at.UTC().Truncate(time.Microsecond),
	}
}

func placeBids(t *testing.T, db AuctionDB, bids ...model.AuctionBid) {
	t.Helper()
	for _, b := range bids {
		err := db.InAuctionTx(context.Background(), b.AuctionID, func(tx AuctionTx) error {
			return tx.PlaceCurrentBid(b)
		})
		require.NoError(t, err)
	}
}

// runAuctionDBContract exercises behaviour every AuctionDB implementation must share
func runAuctionDBContract(t *testing.T, db AuctionDB, s seeder) {
	ctx := context.Background()
	base := time.Now().UTC()

	t.Run("tx_on_missing_auction", func(t *testing.T) {
		err := db.InAuctionTx(ctx, "missing", func(tx AuctionTx) error { return nil })
		require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound), "got %v", err)

		_, err = db.GetAuction(ctx, "missing")
		require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))
	})

	t.Run("single_current_bid", func(t *testing.T) {
		s.seedAuction(t, newAuction("a-bids", "m1"))

		_, err := db.GetCurrentBid(ctx, "a-bids")
		require.True(t, errors.Is(err, auctionerrors.ErrNoBids))

		placeBids(t, db,
			newBid("b1", "a-bids", "x", 100, base),
			newBid("b2", "a-bids", "y", 150, base.Add(time.Second)),
			newBid("b3", "a-bids", "z", 175, base.Add(2*time.Second)),
		)

		current, err := db.GetCurrentBid(ctx, "a-bids")
		require.NoError(t, err)
		require.Equal(t, "b3", current.ID)
		require.True(t, current.IsCurrentBid)

		bids, err := db.GetBidsByAuction(ctx, "a-bids")
		require.NoError(t, err)
		require.Len(t, bids, 3)
		require.Equal(t, []string{"b3", "b2", "b1"}, []string{bids[0].ID, bids[1].ID, bids[2].ID})

		currentCount := 0
		for _, b := range bids {
			if b.IsCurrentBid {
				currentCount++
			}
		}
		require.Equal(t, 1, currentCount)

		n, err := db.CountBids(ctx, "a-bids")
		require.NoError(t, err)
		require.Equal(t, 3, n)
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		s.seedAuction(t, newAuction("a-rollback", "m1"))
		boom := errors.New("boom")

		err := db.InAuctionTx(ctx, "a-rollback", func(tx AuctionTx) error {
			a := tx.Auction()
			a.AuctionStopped = true
			require.NoError(t, tx.SaveAuction(a))
			require.NoError(t, tx.PlaceCurrentBid(newBid("rb1", "a-rollback", "x", 100, base)))
			require.NoError(t, tx.CreatePurchase(model.Purchase{ID: "p-rb", AuctionID: "a-rollback", BuyerID: "x", SellerID: "s", PurchasePrice: 100, PaymentStatus: model.PaymentPending, CreatedAt: base}))
			return boom
		})
		require.ErrorIs(t, err, boom)

		a, err := db.GetAuction(ctx, "a-rollback")
		require.NoError(t, err)
		require.False(t, a.AuctionStopped)
		require.Equal(t, int64(0), a.Version)

		n, err := db.CountBids(ctx, "a-rollback")
		require.NoError(t, err)
		require.Zero(t, n)

		_, err = db.GetPurchase(ctx, "a-rollback")
		require.True(t, errors.Is(err, auctionerrors.ErrPurchaseNotFound))
	})

	t.Run("save_bumps_version_and_rejects_stale", func(t *testing.T) {
		s.seedAuction(t, newAuction("a-version", "m1"))

		err := db.InAuctionTx(ctx, "a-version", func(tx AuctionTx) error {
			a := tx.Auction()
			stale := a
			a.ReauctionCount = 1
			require.NoError(t, tx.SaveAuction(a))
			require.Equal(t, int64(1), tx.Auction().Version)

			err := tx.SaveAuction(stale)
			require.True(t, errors.Is(err, auctionerrors.ErrVersionConflict), "got %v", err)
			return nil
		})
		require.NoError(t, err)

		a, err := db.GetAuction(ctx, "a-version")
		require.NoError(t, err)
		require.Equal(t, int64(1), a.Version)
		require.Equal(t, 1, a.ReauctionCount)
	})

	t.Run("purchase_lifecycle", func(t *testing.T) {
		s.seedAuction(t, newAuction("a-purchase", "m1"))
		p := model.Purchase{ID: "p1", AuctionID: "a-purchase", BuyerID: "y", SellerID: "seller", PurchasePrice: 150, PaymentStatus: model.PaymentPending, CreatedAt: base.Truncate(time.Microsecond)}

		err := db.InAuctionTx(ctx, "a-purchase", func(tx AuctionTx) error {
			require.NoError(t, tx.CreatePurchase(p))
			err := tx.CreatePurchase(p)
			require.True(t, errors.Is(err, auctionerrors.ErrPurchaseExists), "got %v", err)
			return nil
		})
		// postgres aborts the transaction after a constraint violation
		if err != nil {
			require.NoError(t, db.InAuctionTx(ctx, "a-purchase", func(tx AuctionTx) error { return tx.CreatePurchase(p) }))
		}

		got, err := db.GetPurchase(ctx, "a-purchase")
		require.NoError(t, err)
		require.Equal(t, "p1", got.ID)
		require.Equal(t, model.PaymentPending, got.PaymentStatus)

		completedAt := base.Add(time.Hour).Truncate(time.Microsecond)
		require.NoError(t, db.InAuctionTx(ctx, "a-purchase", func(tx AuctionTx) error {
			cur, err := tx.Purchase()
			require.NoError(t, err)
			cur.PaymentStatus = model.PaymentCompleted
			cur.CompletedAt = &completedAt
			return tx.UpdatePurchase(cur)
		}))

		got, err = db.GetPurchase(ctx, "a-purchase")
		require.NoError(t, err)
		require.Equal(t, model.PaymentCompleted, got.PaymentStatus)
		require.NotNil(t, got.CompletedAt)
		require.True(t, completedAt.Equal(*got.CompletedAt))

		require.NoError(t, db.InAuctionTx(ctx, "a-purchase", func(tx AuctionTx) error { return tx.DeletePurchase() }))
		_, err = db.GetPurchase(ctx, "a-purchase")
		require.True(t, errors.Is(err, auctionerrors.ErrPurchaseNotFound))
	})

	t.Run("delete_bids", func(t *testing.T) {
		s.seedAuction(t, newAuction("a-delete", "m1"))
		placeBids(t, db,
			newBid("d1", "a-delete", "x", 100, base),
			newBid("d2", "a-delete", "y", 120, base.Add(time.Second)),
		)

		var deleted int
		require.NoError(t, db.InAuctionTx(ctx, "a-delete", func(tx AuctionTx) error {
			var err error
			deleted, err = tx.DeleteBids()
			return err
		}))
		require.Equal(t, 2, deleted)

		n, err := db.CountBids(ctx, "a-delete")
		require.NoError(t, err)
		require.Zero(t, n)

		_, err = db.GetBidsByAuction(ctx, "a-delete")
		require.True(t, errors.Is(err, auctionerrors.ErrNoBids))
	})

	t.Run("past_bids_skip_current_and_blocked", func(t *testing.T) {
		s.seedAuction(t, newAuction("a-past", "m1"))
		s.seedBuyer(t, model.Buyer{ID: "blocked", IsBlocked: true})

		placeBids(t, db,
			newBid("p1", "a-past", "u1", 100, base),
			newBid("p2", "a-past", "u2", 110, base.Add(1*time.Second)),
			newBid("p3", "a-past", "blocked", 120, base.Add(2*time.Second)),
			newBid("p4", "a-past", "u3", 130, base.Add(3*time.Second)),
			newBid("p5", "a-past", "u4", 140, base.Add(4*time.Second)),
			newBid("p6", "a-past", "u5", 150, base.Add(5*time.Second)),
		)

		past, err := db.GetPastBids(ctx, "a-past", 3)
		require.NoError(t, err)
		require.Len(t, past, 3)
		require.Equal(t, []string{"p5", "p4", "p2"}, []string{past[0].ID, past[1].ID, past[2].ID})
		for _, b := range past {
			require.False(t, b.IsCurrentBid)
		}

		empty, err := db.GetPastBids(ctx, "a-bids-none", 3)
		require.NoError(t, err)
		require.Empty(t, empty)

		// the locked read sees the same rows, including bids staged in the tx
		require.NoError(t, db.InAuctionTx(ctx, "a-past", func(tx AuctionTx) error {
			inTx, err := tx.PastBids(3)
			require.NoError(t, err)
			require.Equal(t, []string{"p5", "p4", "p2"}, []string{inTx[0].ID, inTx[1].ID, inTx[2].ID})

			if err := tx.PlaceCurrentBid(newBid("p7", "a-past", "u6", 160, base.Add(6*time.Second))); err != nil {
				return err
			}
			inTx, err = tx.PastBids(2)
			require.NoError(t, err)
			require.Equal(t, []string{"p6", "p5"}, []string{inTx[0].ID, inTx[1].ID})
			return nil
		}))
	})

	t.Run("report_buyer_and_side_records", func(t *testing.T) {
		s.seedAuction(t, newAuction("a-report", "m1"))
		now := base.Truncate(time.Microsecond)

		require.NoError(t, db.InAuctionTx(ctx, "a-report", func(tx AuctionTx) error {
			if err := tx.ReportBuyer("defaulter", "did not pay"); err != nil {
				return err
			}
			if err := tx.AddNotification(model.Notification{ID: "n1", UserID: "defaulter", Message: "reported", CreatedAt: now}); err != nil {
				return err
			}
			return tx.OpenConversation(model.Conversation{ID: "c1", AuctionID: "a-report", BuyerID: "defaulter", SellerID: "seller", OpenedAt: now, ExpiresAt: now.Add(120 * time.Hour)})
		}))

		b, err := db.GetBuyer(ctx, "defaulter")
		require.NoError(t, err)
		require.True(t, b.IsReported)
		require.Equal(t, "did not pay", b.ReportReason)

		notes, err := db.GetNotifications(ctx, "defaulter")
		require.NoError(t, err)
		require.Len(t, notes, 1)
		require.Equal(t, "reported", notes[0].Message)

		c, err := db.GetConversation(ctx, "a-report")
		require.NoError(t, err)
		require.Equal(t, "c1", c.ID)
		require.True(t, c.ExpiresAt.Equal(now.Add(120*time.Hour)))
	})

	t.Run("awaiting_payment", func(t *testing.T) {
		a := newAuction("a-awaiting", "m1")
		winner := "y"
		price := int64(150)
		deadline := base.Add(96 * time.Hour).Truncate(time.Microsecond)
		a.StartedAuction = model.StartedEnded
		a.AuctionStopped = true
		a.WinnerID = &winner
		a.FinalPurchasePrice = &price
		a.PaymentDeadline = &deadline
		s.seedAuction(t, a)

		require.NoError(t, db.InAuctionTx(ctx, "a-awaiting", func(tx AuctionTx) error {
			return tx.CreatePurchase(model.Purchase{ID: "p-awaiting", AuctionID: "a-awaiting", BuyerID: winner, SellerID: a.SellerID, PurchasePrice: price, PaymentStatus: model.PaymentPending, CreatedAt: base})
		}))

		list, err := db.ListAwaitingPayment(ctx)
		require.NoError(t, err)

		var found *model.AuctionRequest
		for i := range list {
			if list[i].ID == "a-awaiting" {
				found = &list[i]
			}
		}
		require.NotNil(t, found)
		require.Equal(t, winner, *found.WinnerID)
		require.True(t, deadline.Equal(*found.PaymentDeadline))
	})

	t.Run("concurrent_tx_serialized", func(t *testing.T) {
		s.seedAuction(t, newAuction("a-concurrent", "m1"))

		var wg sync.WaitGroup
		concurrentCount := 25
		errs := make(chan error, concurrentCount)

		for i := 0; i < concurrentCount; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				errs <- db.InAuctionTx(ctx, "a-concurrent", func(tx AuctionTx) error {
					a := tx.Auction()
					a.ReauctionCount++
					if err := tx.SaveAuction(a); err != nil {
						return err
					}
					return tx.PlaceCurrentBid(newBid(fmt.Sprintf("cb-%d", i), "a-concurrent", fmt.Sprintf("u-%d", i), int64(100+i), time.Now()))
				})
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		a, err := db.GetAuction(ctx, "a-concurrent")
		require.NoError(t, err)
		require.Equal(t, concurrentCount, a.ReauctionCount)
		require.Equal(t, int64(concurrentCount), a.Version)

		bids, err := db.GetBidsByAuction(ctx, "a-concurrent")
		require.NoError(t, err)
		require.Len(t, bids, concurrentCount)

		current := 0
		for _, b := range bids {
			if b.IsCurrentBid {
				current++
			}
		}
		require.Equal(t, 1, current)
	})

	t.Run("health", func(t *testing.T) {
		require.Equal(t, "up", db.Health(ctx)["status"])
	})
}
