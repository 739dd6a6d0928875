package integrationtests

import (
	"net/http"
	"sync"
	"testing"
	"time"

	model "vehicle-auctions/internal/models"
	"vehicle-auctions/services/helpers"

	"github.com/stretchr/testify/require"
)

func bid(t *testing.T, env *testEnv, buyerID, auctionID string, amount int64) {
	t.Helper()
	_, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/buyer/bids", env.BuyerToken(t, buyerID),
		helpers.PlaceBidRequest{AuctionID: auctionID, Amount: amount})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestStartAuction_Idempotent(t *testing.T) {
	env := SetupTestEnv(t, approvedAuction("auction1", 50))
	manager := env.ManagerToken(t)

	for i := 0; i < 2; i++ {
		_, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/start-auction/auction1", manager, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	resp, w := env.ExecuteRequestAndParse(t, http.MethodGet, "/auction-manager/view-bids/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	auction := Data(t, resp)["auction"].(map[string]any)
	require.Equal(t, "yes", auction["started_auction"])
	require.Equal(t, false, auction["auction_stopped"])
}

func TestStartAuction_Rejections(t *testing.T) {
	pending := approvedAuction("pending", 50)
	pending.Status = model.ReviewPending

	tests := []struct {
		name       string
		auctionID  string
		token      func(t *testing.T, env *testEnv) string
		wantStatus int
	}{
		{"Not_Approved", "pending", func(t *testing.T, env *testEnv) string { return env.ManagerToken(t) }, http.StatusConflict},
		{"Not_Found", "missing", func(t *testing.T, env *testEnv) string { return env.ManagerToken(t) }, http.StatusNotFound},
		{"Other_Manager", "auction1", func(t *testing.T, env *testEnv) string { return env.Token(t, "manager2", "auction_manager") }, http.StatusForbidden},
		{"Buyer_Role", "auction1", func(t *testing.T, env *testEnv) string { return env.BuyerToken(t, "buyer1") }, http.StatusForbidden},
		{"No_Token", "auction1", func(t *testing.T, env *testEnv) string { return "" }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := SetupTestEnv(t, approvedAuction("auction1", 50), pending)
			resp, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/start-auction/"+tt.auctionID, tt.token(t, env), nil)
			require.Equal(t, tt.wantStatus, w.Code)
			require.Equal(t, false, resp["success"])
		})
	}
}

func TestStopAuction_SelectsWinner(t *testing.T) {
	env := SetupTestEnv(t, approvedAuction("auction1", 50))
	manager := env.ManagerToken(t)

	_, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/start-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)

	bid(t, env, "buyerX", "auction1", 100)
	bid(t, env, "buyerY", "auction1", 150)

	resp, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/stop-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := Data(t, resp)
	require.Equal(t, true, data["hasWinner"])
	require.Equal(t, "buyerY", data["winnerId"])
	require.Equal(t, 150.0, data["finalPurchasePrice"])
	require.Equal(t, epoch.Add(96*time.Hour).Format(time.RFC3339), data["paymentDeadline"])

	purchase, err := env.repo.GetPurchase(t.Context(), "auction1")
	require.NoError(t, err)
	require.Equal(t, model.PaymentPending, purchase.PaymentStatus)
	require.Equal(t, int64(150), purchase.PurchasePrice)
	require.Equal(t, "seller1", purchase.SellerID)

	notes, err := env.repo.GetNotifications(t.Context(), "buyerY")
	require.NoError(t, err)
	require.Len(t, notes, 1)

	conv, err := env.repo.GetConversation(t.Context(), "auction1")
	require.NoError(t, err)
	require.Equal(t, "buyerY", conv.BuyerID)

	// bidding is closed once stopped
	_, w = env.ExecuteRequestAndParse(t, http.MethodPost, "/buyer/bids", env.BuyerToken(t, "buyerX"),
		helpers.PlaceBidRequest{AuctionID: "auction1", Amount: 500})
	require.Equal(t, http.StatusConflict, w.Code)

	_, w = env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/stop-auction/auction1", manager, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestStopAuction_ConcurrentCreatesOnePurchase(t *testing.T) {
	env := SetupTestEnv(t, approvedAuction("auction1", 50))
	manager := env.ManagerToken(t)

	_, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/start-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	bid(t, env, "buyerX", "auction1", 100)

	const callers = 20
	codes := make(chan int, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/stop-auction/auction1", manager, nil)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	counts := map[int]int{}
	for code := range codes {
		counts[code]++
	}
	require.Equal(t, 1, counts[http.StatusOK])
	require.Equal(t, callers-1, counts[http.StatusConflict])

	_, err := env.repo.GetPurchase(t.Context(), "auction1")
	require.NoError(t, err)
}

func TestReAuction_AfterMissedPayment(t *testing.T) {
	env := SetupTestEnv(t, approvedAuction("auction1", 50))
	manager := env.ManagerToken(t)

	_, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/start-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	bid(t, env, "buyerX", "auction1", 100)
	bid(t, env, "buyerY", "auction1", 150)

	_, w = env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/stop-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/re-auction/auction1", manager, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, resp["message"], "deadline")

	resp, w = env.ExecuteRequestAndParse(t, http.MethodGet, "/auction-manager/overdue-auctions", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp["data"])

	env.clock.Increment(97 * time.Hour)

	_, w = env.ExecuteRequestAndParse(t, http.MethodPost, "/buyer/purchases/auction1/pay", env.BuyerToken(t, "buyerY"), nil)
	require.Equal(t, http.StatusConflict, w.Code)

	resp, w = env.ExecuteRequestAndParse(t, http.MethodGet, "/auction-manager/overdue-auctions", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"], 1)

	resp, w = env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/re-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := Data(t, resp)
	require.Equal(t, "buyerY", data["reportedBuyerId"])
	require.Equal(t, 2.0, data["clearedBids"])
	auction := data["auction"].(map[string]any)
	require.Equal(t, "yes", auction["started_auction"])
	require.Equal(t, true, auction["is_reauctioned"])
	require.Nil(t, auction["winner_id"])

	buyer, err := env.repo.GetBuyer(t.Context(), "buyerY")
	require.NoError(t, err)
	require.True(t, buyer.IsReported)

	resp, w = env.ExecuteRequestAndParse(t, http.MethodGet, "/auctions/auction1/bids", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp["data"])

	_, err = env.repo.GetPurchase(t.Context(), "auction1")
	require.Error(t, err)

	// the second round settles normally
	bid(t, env, "buyerX", "auction1", 120)
	resp, w = env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/stop-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "buyerX", Data(t, resp)["winnerId"])

	resp, w = env.ExecuteRequestAndParse(t, http.MethodPost, "/buyer/purchases/auction1/pay", env.BuyerToken(t, "buyerX"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "completed", Data(t, resp)["payment_status"])

	_, w = env.ExecuteRequestAndParse(t, http.MethodPost, "/buyer/purchases/auction1/pay", env.BuyerToken(t, "buyerX"), nil)
	require.Equal(t, http.StatusConflict, w.Code)

	env.clock.Increment(97 * time.Hour)
	_, w = env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/re-auction/auction1", manager, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestReAuction_NoBids(t *testing.T) {
	env := SetupTestEnv(t, approvedAuction("auction1", 50))
	manager := env.ManagerToken(t)

	_, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/start-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/stop-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := Data(t, resp)
	require.Equal(t, false, data["hasWinner"])
	require.Nil(t, data["winnerId"])
	require.Nil(t, data["paymentDeadline"])

	resp, w = env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/re-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, Data(t, resp)["reportedBuyerId"])

	_, w = env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/re-auction/auction1", manager, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestViewBids_PastBidsLimit(t *testing.T) {
	env := SetupTestEnv(t, approvedAuction("auction1", 50))
	manager := env.ManagerToken(t)

	_, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/auction-manager/start-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for i, amount := range []int64{100, 110, 120, 130, 140} {
		bid(t, env, []string{"b1", "b2", "b3", "b4", "b5"}[i], "auction1", amount)
		env.clock.Increment(time.Second)
	}

	resp, w := env.ExecuteRequestAndParse(t, http.MethodGet, "/auction-manager/view-bids/auction1", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := Data(t, resp)
	require.Equal(t, 140.0, data["currentBid"].(map[string]any)["amount"])
	past := data["pastBids"].([]any)
	require.Len(t, past, 3)
	require.Equal(t, 130.0, past[0].(map[string]any)["amount"])
	require.Equal(t, 110.0, past[2].(map[string]any)["amount"])
}
