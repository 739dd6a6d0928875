package handler

import (
	"context"
	"net/http"

	model "vehicle-auctions/internal/models"
	settlement "vehicle-auctions/internal/settlementService"
	"vehicle-auctions/services/helpers"
	"vehicle-auctions/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auction_manager_handler.go -destination=mock_auction_manager_handler.go -package=handler

type SettlementServiceInterface interface {
	StartAuction(ctx context.Context, auctionID, managerID string) error
	StopAuction(ctx context.Context, auctionID, managerID string) (settlement.StopResult, error)
	ReAuction(ctx context.Context, auctionID, managerID string) (settlement.ReauctionResult, error)
	ViewBids(ctx context.Context, auctionID, managerID string) (settlement.BidsView, error)
	ListOverdue(ctx context.Context, managerID string) ([]model.AuctionRequest, error)
}

// AuctionManagerHandler serves the auction manager's settlement endpoints
type AuctionManagerHandler struct {
	service SettlementServiceInterface
}

func NewAuctionManagerHandler(service SettlementServiceInterface) *AuctionManagerHandler {
	return &AuctionManagerHandler{service: service}
}

// StartAuctionHandler handles POST /auction-manager/start-auction/:id
func (h *AuctionManagerHandler) StartAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")
	managerID := helpers.UserID(c)

	if err := h.service.StartAuction(c.Request.Context(), auctionID, managerID); err != nil {
		helpers.HandleServiceError(c, "StartAuctionHandler", "failed to start auction", err, map[string]any{
			"auction_id": auctionID,
			"manager_id": managerID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"auctionId": auctionID}, "auction started successfully")
	helpers.LogSuccess("StartAuctionHandler", "auction started", map[string]any{
		"auction_id": auctionID,
		"manager_id": managerID,
	})
}

// StopAuctionHandler handles POST /auction-manager/stop-auction/:id
func (h *AuctionManagerHandler) StopAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")
	managerID := helpers.UserID(c)

	res, err := h.service.StopAuction(c.Request.Context(), auctionID, managerID)
	if err != nil {
		helpers.HandleServiceError(c, "StopAuctionHandler", "failed to stop auction", err, map[string]any{
			"auction_id": auctionID,
			"manager_id": managerID,
		})
		return
	}

	message := "auction stopped with no bids"
	fields := map[string]any{"auction_id": auctionID, "manager_id": managerID, "has_winner": res.HasWinner}
	if res.HasWinner {
		message = "auction stopped, winner selected"
		fields["winner_id"] = *res.WinnerID
		fields["final_price"] = *res.FinalPrice
		fields["purchase_id"] = res.PurchaseID
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToStopAuctionResponse(res), message)
	helpers.LogSuccess("StopAuctionHandler", message, fields)
}

// ReAuctionHandler handles POST /auction-manager/re-auction/:id
func (h *AuctionManagerHandler) ReAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")
	managerID := helpers.UserID(c)

	res, err := h.service.ReAuction(c.Request.Context(), auctionID, managerID)
	if err != nil {
		helpers.HandleServiceError(c, "ReAuctionHandler", "failed to re-auction", err, map[string]any{
			"auction_id": auctionID,
			"manager_id": managerID,
		})
		return
	}

	resp := helpers.ReauctionResponse{
		Auction:         res.Auction,
		ReportedBuyerID: res.ReportedBuyerID,
		ClearedBids:     res.ClearedBids,
	}
	utils.JSONResponse(c, http.StatusOK, resp, "auction re-opened for bidding")
	helpers.LogSuccess("ReAuctionHandler", "auction re-opened", map[string]any{
		"auction_id":      auctionID,
		"manager_id":      managerID,
		"cleared_bids":    res.ClearedBids,
		"reauction_count": res.Auction.ReauctionCount,
	})
}

// ViewBidsHandler handles GET /auction-manager/view-bids/:id
func (h *AuctionManagerHandler) ViewBidsHandler(c *gin.Context) {
	auctionID := c.Param("id")
	managerID := helpers.UserID(c)

	view, err := h.service.ViewBids(c.Request.Context(), auctionID, managerID)
	if err != nil {
		helpers.HandleServiceError(c, "ViewBidsHandler", "failed to load bids", err, map[string]any{
			"auction_id": auctionID,
			"manager_id": managerID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToViewBidsResponse(view), "bids retrieved successfully")
	helpers.LogSuccess("ViewBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"past_bids":  len(view.PastBids),
	})
}

// ListOverdueHandler handles GET /auction-manager/overdue-auctions
func (h *AuctionManagerHandler) ListOverdueHandler(c *gin.Context) {
	managerID := helpers.UserID(c)

	auctions, err := h.service.ListOverdue(c.Request.Context(), managerID)
	if err != nil {
		helpers.HandleServiceError(c, "ListOverdueHandler", "failed to list overdue auctions", err, map[string]any{
			"manager_id": managerID,
		})
		return
	}

	if auctions == nil {
		auctions = []model.AuctionRequest{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "overdue auctions retrieved successfully")
	helpers.LogSuccess("ListOverdueHandler", "overdue auctions retrieved", map[string]any{
		"manager_id": managerID,
		"count":      len(auctions),
	})
}
