package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vehicle-auctions/internal/auth"
	bidding "vehicle-auctions/internal/biddingService"
	"vehicle-auctions/internal/events"
	model "vehicle-auctions/internal/models"
	"vehicle-auctions/internal/repository"
	settlement "vehicle-auctions/internal/settlementService"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router *gin.Engine
	hub    *events.Hub
	tokens *auth.TokenManager
	clock  *fakeclock.FakeClock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	start := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryRepo()
	repo.AddAuction(model.AuctionRequest{
		ID:                     "auction1",
		SellerID:               "seller1",
		VehicleName:            "2019 Honda Civic",
		StartingPrice:          50,
		Status:                 model.ReviewApproved,
		StartedAuction:         model.StartedNo,
		AssignedAuctionManager: "manager1",
		CreatedAt:              start,
		UpdatedAt:              start,
	})

	clk := fakeclock.NewFakeClock(start)
	hub := events.NewHub()
	t.Cleanup(hub.Close)
	tokens := auth.NewTokenManager("router-secret", time.Hour)

	router := SetupRouter(Deps{
		Settlement:    settlement.NewSettlementService(repo, hub, clk, settlement.DefaultOptions()),
		Bidding:       bidding.NewBiddingService(repo, hub, clk),
		Feed:          hub,
		Store:         repo,
		Tokens:        tokens,
		BidsPerSecond: 100,
		BidBurst:      100,
	})
	return &testApp{router: router, hub: hub, tokens: tokens, clock: clk}
}

func (a *testApp) token(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := a.tokens.Generate(userID, role)
	require.NoError(t, err)
	return token
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHealth(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	status, resp := app.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "up", resp["data"].(map[string]any)["status"])
}

func TestRouter_AccessControl(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	buyer := app.token(t, "buyer1", auth.RoleBuyer)
	manager := app.token(t, "manager1", auth.RoleAuctionManager)
	seller := app.token(t, "seller1", auth.RoleSeller)

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{"anonymous_manager_route", http.MethodPost, "/auction-manager/start-auction/auction1", "", http.StatusUnauthorized},
		{"buyer_on_manager_route", http.MethodPost, "/auction-manager/stop-auction/auction1", buyer, http.StatusForbidden},
		{"manager_on_buyer_route", http.MethodPost, "/buyer/purchases/auction1/pay", manager, http.StatusForbidden},
		{"seller_reads_bids", http.MethodGet, "/auctions/auction1/bids", seller, http.StatusOK},
		{"anonymous_reads_bids", http.MethodGet, "/auctions/auction1/bids", "", http.StatusUnauthorized},
		{"other_manager_views_bids", http.MethodGet, "/auction-manager/view-bids/auction1", app.token(t, "manager2", auth.RoleAuctionManager), http.StatusForbidden},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, resp := app.do(t, tc.method, tc.path, tc.token, nil)
			require.Equal(t, tc.expectedStatus, status)
			if status != http.StatusOK {
				require.Equal(t, false, resp["success"])
			}
		})
	}
}

func TestRouter_SettlementFlow(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	manager := app.token(t, "manager1", auth.RoleAuctionManager)
	buyerX := app.token(t, "buyerX", auth.RoleBuyer)
	buyerY := app.token(t, "buyerY", auth.RoleBuyer)

	status, _ := app.do(t, http.MethodPost, "/auction-manager/start-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = app.do(t, http.MethodPost, "/buyer/bids", buyerX, map[string]any{"auction_id": "auction1", "amount": 100})
	require.Equal(t, http.StatusCreated, status)

	status, resp := app.do(t, http.MethodPost, "/buyer/bids", buyerY, map[string]any{"auction_id": "auction1", "amount": 100})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, false, resp["success"])

	status, _ = app.do(t, http.MethodPost, "/buyer/bids", buyerY, map[string]any{"auction_id": "auction1", "amount": 150})
	require.Equal(t, http.StatusCreated, status)

	status, resp = app.do(t, http.MethodGet, "/auctions/auction1/current-bid", buyerX, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "buyerY", resp["data"].(map[string]any)["buyer_id"])

	status, resp = app.do(t, http.MethodPost, "/auction-manager/stop-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, status)
	data := resp["data"].(map[string]any)
	require.Equal(t, true, data["hasWinner"])
	require.Equal(t, "buyerY", data["winnerId"])
	require.Equal(t, 150.0, data["finalPurchasePrice"])
	require.Equal(t, "2026-05-08T10:00:00Z", data["paymentDeadline"])

	status, _ = app.do(t, http.MethodPost, "/auction-manager/re-auction/auction1", manager, nil)
	require.Equal(t, http.StatusConflict, status)

	status, _ = app.do(t, http.MethodPost, "/buyer/purchases/auction1/pay", buyerX, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, resp = app.do(t, http.MethodPost, "/buyer/purchases/auction1/pay", buyerY, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "completed", resp["data"].(map[string]any)["payment_status"])
}

func TestRouter_InvalidBidBody(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	buyer := app.token(t, "buyer1", auth.RoleBuyer)

	status, _ := app.do(t, http.MethodPost, "/buyer/bids", buyer, map[string]any{"auction_id": "auction1", "amount": -5})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestRouter_EventFeed(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	srv := httptest.NewServer(app.router)
	t.Cleanup(srv.Close)

	watcher := app.token(t, "buyer1", auth.RoleBuyer)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/auctions/auction1?token=" + watcher

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return app.hub.Subscribers("auction1") == 1 }, 2*time.Second, 10*time.Millisecond)

	manager := app.token(t, "manager1", auth.RoleAuctionManager)
	status, _ := app.do(t, http.MethodPost, "/auction-manager/start-auction/auction1", manager, nil)
	require.Equal(t, http.StatusOK, status)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt map[string]any
	require.NoError(t, conn.ReadJSON(&evt))
	require.Equal(t, string(events.AuctionStarted), evt["type"])
	require.Equal(t, "auction1", evt["auction_id"])

	_, _, err = websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/auctions/auction1", nil)
	require.Error(t, err)
}
