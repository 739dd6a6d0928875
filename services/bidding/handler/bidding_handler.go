package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"vehicle-auctions/internal/auctionerrors"
	model "vehicle-auctions/internal/models"
	"vehicle-auctions/services/helpers"
	"vehicle-auctions/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_handler.go -package=handler

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, auctionID, buyerID string, amount int64) (model.AuctionBid, error)
	GetBidsForAuction(ctx context.Context, auctionID string) ([]model.AuctionBid, error)
	GetCurrentBid(ctx context.Context, auctionID string) (model.AuctionBid, error)
}

type PaymentServiceInterface interface {
	CompletePayment(ctx context.Context, auctionID, buyerID string) (model.Purchase, error)
}

type BiddingHandler struct {
	service  BiddingServiceInterface
	payments PaymentServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface, payments PaymentServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service, payments: payments}
}

// PlaceBidHandler handles POST /buyer/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	buyerID := helpers.UserID(c)
	bid, err := h.service.PlaceBid(c.Request.Context(), req.AuctionID, buyerID, req.Amount)
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", "failed to place bid", err, map[string]any{
			"auction_id": req.AuctionID,
			"buyer_id":   buyerID,
			"amount":     req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": bid.AuctionID,
		"buyer_id":   buyerID,
		"amount":     bid.BidAmount,
	})
}

// GetBidsByAuctionHandler handles GET /auctions/:id/bids
func (h *BiddingHandler) GetBidsByAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")
	bids, err := h.service.GetBidsForAuction(c.Request.Context(), auctionID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		helpers.HandleServiceError(c, "GetBidsByAuctionHandler", "error retrieving bids", err, map[string]any{"auction_id": auctionID})
		return
	}

	resp := helpers.ToBidResponses(bids)
	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByAuctionHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(resp),
	})
}

// GetCurrentBidHandler handles GET /auctions/:id/current-bid
func (h *BiddingHandler) GetCurrentBidHandler(c *gin.Context) {
	auctionID := c.Param("id")
	bid, err := h.service.GetCurrentBid(c.Request.Context(), auctionID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no current bid found")
			utils.Info("GetCurrentBidHandler: no current bid found", map[string]any{"auction_id": auctionID})
			return
		}
		helpers.HandleServiceError(c, "GetCurrentBidHandler", "current bid error", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "current bid retrieved successfully")
	helpers.LogSuccess("GetCurrentBidHandler", "current bid retrieved successfully", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": bid.AuctionID,
		"buyer_id":   bid.BuyerID,
		"amount":     bid.BidAmount,
	})
}

// PayForAuctionHandler handles POST /buyer/purchases/:id/pay where id is the auction ID
func (h *BiddingHandler) PayForAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")
	buyerID := helpers.UserID(c)

	purchase, err := h.payments.CompletePayment(c.Request.Context(), auctionID, buyerID)
	if err != nil {
		helpers.HandleServiceError(c, "PayForAuctionHandler", "failed to complete payment", err, map[string]any{
			"auction_id": auctionID,
			"buyer_id":   buyerID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToPurchaseResponse(purchase), fmt.Sprintf("payment for auction %s completed", auctionID))
	helpers.LogSuccess("PayForAuctionHandler", "payment completed", map[string]any{
		"purchase_id": purchase.ID,
		"auction_id":  auctionID,
		"buyer_id":    buyerID,
		"amount":      purchase.PurchasePrice,
	})
}
