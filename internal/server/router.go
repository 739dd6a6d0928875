package server

import (
	"context"
	"net/http"

	"vehicle-auctions/internal/auth"
	managerhandler "vehicle-auctions/services/auctionmanager/handler"
	biddinghandler "vehicle-auctions/services/bidding/handler"
	"vehicle-auctions/services/helpers"
	"vehicle-auctions/utils"

	"github.com/gin-gonic/gin"
)

// SettlementService is the manager and payment side of the settlement service
type SettlementService interface {
	managerhandler.SettlementServiceInterface
	biddinghandler.PaymentServiceInterface
}

// Feed upgrades a request into a live event stream for one auction
type Feed interface {
	Serve(w http.ResponseWriter, r *http.Request, auctionID, userID string) error
}

type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// Deps are the collaborators the router wires into handlers
type Deps struct {
	Settlement    SettlementService
	Bidding       biddinghandler.BiddingServiceInterface
	Feed          Feed
	Store         HealthChecker
	Tokens        *auth.TokenManager
	BidsPerSecond float64
	BidBurst      int
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/health", healthHandler(deps.Store))

	managerHandler := managerhandler.NewAuctionManagerHandler(deps.Settlement)
	biddingHandler := biddinghandler.NewBiddingHandler(deps.Bidding, deps.Settlement)

	authed := router.Group("/", AuthMiddleware(deps.Tokens))

	manager := authed.Group("/auction-manager", RequireRole(auth.RoleAuctionManager))
	{
		manager.POST("/start-auction/:id", managerHandler.StartAuctionHandler)
		manager.POST("/stop-auction/:id", managerHandler.StopAuctionHandler)
		manager.POST("/re-auction/:id", managerHandler.ReAuctionHandler)
		manager.GET("/view-bids/:id", managerHandler.ViewBidsHandler)
		manager.GET("/overdue-auctions", managerHandler.ListOverdueHandler)
	}

	buyer := authed.Group("/buyer", RequireRole(auth.RoleBuyer))
	{
		buyer.POST("/bids", BidRateLimiter(deps.BidsPerSecond, deps.BidBurst), biddingHandler.PlaceBidHandler)
		buyer.POST("/purchases/:id/pay", biddingHandler.PayForAuctionHandler)
	}

	auctions := authed.Group("/auctions")
	{
		auctions.GET("/:id/bids", biddingHandler.GetBidsByAuctionHandler)
		auctions.GET("/:id/current-bid", biddingHandler.GetCurrentBidHandler)
	}

	authed.GET("/ws/auctions/:id", feedHandler(deps.Feed))

	return router
}

func healthHandler(store HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := store.Health(c.Request.Context())
		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		utils.JSONResponse(c, status, stats, "health check")
	}
}

func feedHandler(feed Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionID := c.Param("id")
		userID := helpers.UserID(c)

		// Upgrade writes its own error response on failure.
		if err := feed.Serve(c.Writer, c.Request, auctionID, userID); err != nil {
			utils.Warn("feedHandler: websocket upgrade failed", map[string]any{
				"auction_id": auctionID,
				"user_id":    userID,
				"error":      err.Error(),
			})
			return
		}
		utils.Info("feedHandler: subscriber connected", map[string]any{
			"auction_id": auctionID,
			"user_id":    userID,
		})
	}
}
