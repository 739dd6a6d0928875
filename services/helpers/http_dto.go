package helpers

import (
	"time"

	model "vehicle-auctions/internal/models"
	settlement "vehicle-auctions/internal/settlementService"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	AuctionID string `json:"auction_id" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID        string `json:"bid_id"`
	AuctionID    string `json:"auction_id"`
	BuyerID      string `json:"buyer_id"`
	Amount       int64  `json:"amount"`
	BidTime      string `json:"bid_time"`
	IsCurrentBid bool   `json:"is_current_bid"`
}

type StopAuctionResponse struct {
	HasWinner          bool    `json:"hasWinner"`
	WinnerID           *string `json:"winnerId"`
	FinalPurchasePrice *int64  `json:"finalPurchasePrice"`
	PaymentDeadline    *string `json:"paymentDeadline"`
	PurchaseID         string  `json:"purchaseId,omitempty"`
}

type ReauctionResponse struct {
	Auction         model.AuctionRequest `json:"auction"`
	ReportedBuyerID *string              `json:"reportedBuyerId"`
	ClearedBids     int                  `json:"clearedBids"`
}

type ViewBidsResponse struct {
	Auction    model.AuctionRequest `json:"auction"`
	CurrentBid *BidResponse         `json:"currentBid"`
	PastBids   []BidResponse        `json:"pastBids"`
}

type PurchaseResponse struct {
	PurchaseID    string  `json:"purchase_id"`
	AuctionID     string  `json:"auction_id"`
	BuyerID       string  `json:"buyer_id"`
	SellerID      string  `json:"seller_id"`
	PurchasePrice int64   `json:"purchase_price"`
	PaymentStatus string  `json:"payment_status"`
	CompletedAt   *string `json:"completed_at"`
}

func ToBidResponse(b model.AuctionBid) BidResponse {
	return BidResponse{
		BidID:        b.ID,
		AuctionID:    b.AuctionID,
		BuyerID:      b.BuyerID,
		Amount:       b.BidAmount,
		BidTime:      b.BidTime.UTC().Format(time.RFC3339),
		IsCurrentBid: b.IsCurrentBid,
	}
}

func ToBidResponses(bids []model.AuctionBid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, ToBidResponse(b))
	}
	return out
}

func ToStopAuctionResponse(res settlement.StopResult) StopAuctionResponse {
	return StopAuctionResponse{
		HasWinner:          res.HasWinner,
		WinnerID:           res.WinnerID,
		FinalPurchasePrice: res.FinalPrice,
		PaymentDeadline:    formatTime(res.PaymentDeadline),
		PurchaseID:         res.PurchaseID,
	}
}

func ToViewBidsResponse(v settlement.BidsView) ViewBidsResponse {
	resp := ViewBidsResponse{
		Auction:  v.Auction,
		PastBids: ToBidResponses(v.PastBids),
	}
	if v.CurrentBid != nil {
		cur := ToBidResponse(*v.CurrentBid)
		resp.CurrentBid = &cur
	}
	return resp
}

func ToPurchaseResponse(p model.Purchase) PurchaseResponse {
	return PurchaseResponse{
		PurchaseID:    p.ID,
		AuctionID:     p.AuctionID,
		BuyerID:       p.BuyerID,
		SellerID:      p.SellerID,
		PurchasePrice: p.PurchasePrice,
		PaymentStatus: string(p.PaymentStatus),
		CompletedAt:   formatTime(p.CompletedAt),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
