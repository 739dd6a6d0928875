package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"vehicle-auctions/internal/auth"
	bidding "vehicle-auctions/internal/biddingService"
	"vehicle-auctions/internal/events"
	model "vehicle-auctions/internal/models"
	"vehicle-auctions/internal/repository"
	"vehicle-auctions/internal/server"
	settlement "vehicle-auctions/internal/settlementService"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const managerID = "manager1"

var epoch = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

// testEnv is a full HTTP stack over the in-memory repository and a fake clock
type testEnv struct {
	router *gin.Engine
	repo   *repository.MemoryRepo
	clock  *fakeclock.FakeClock
	tokens *auth.TokenManager
}

// SetupTestEnv initializes the router and seeds the repo with auctions.
func SetupTestEnv(t *testing.T, auctions ...model.AuctionRequest) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		repo:   repository.NewMemoryRepo(),
		clock:  fakeclock.NewFakeClock(epoch),
		tokens: auth.NewTokenManager("integration-secret", 24*time.Hour),
	}
	for _, a := range auctions {
		env.repo.AddAuction(a)
	}

	env.router = server.SetupRouter(server.Deps{
		Settlement: settlement.NewSettlementService(env.repo, events.Discard{}, env.clock, settlement.DefaultOptions()),
		Bidding:    bidding.NewBiddingService(env.repo, events.Discard{}, env.clock),
		Feed:       events.NewHub(),
		Store:      env.repo,
		Tokens:     env.tokens,
	})
	return env
}

// approvedAuction builds an approved auction that has not started, assigned to managerID
func approvedAuction(id string, startingPrice int64) model.AuctionRequest {
	return model.AuctionRequest{
		ID:                     id,
		SellerID:               "seller1",
		VehicleName:            "2017 Mazda 3",
		Year:                   2017,
		Mileage:                80000,
		StartingPrice:          startingPrice,
		Status:                 model.ReviewApproved,
		StartedAuction:         model.StartedNo,
		AssignedAuctionManager: managerID,
		CreatedAt:              epoch,
		UpdatedAt:              epoch,
	}
}

func (e *testEnv) Token(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := e.tokens.Generate(userID, role)
	require.NoError(t, err)
	return token
}

func (e *testEnv) ManagerToken(t *testing.T) string {
	return e.Token(t, managerID, auth.RoleAuctionManager)
}

func (e *testEnv) BuyerToken(t *testing.T, buyerID string) string {
	return e.Token(t, buyerID, auth.RoleBuyer)
}

// ExecuteRequestAndParse executes an HTTP request on the router as the token's
// owner and parses the response envelope
func (e *testEnv) ExecuteRequestAndParse(t *testing.T, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	e.router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// Data returns the envelope's data object
func Data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "response data is not an object: %v", resp["data"])
	return data
}
