package models

import "time"

// ReviewStatus is the manager review state of an auction request
type ReviewStatus string

const (
	ReviewPending          ReviewStatus = "pending"
	ReviewAssignedMechanic ReviewStatus = "assignedMechanic"
	ReviewApproved         ReviewStatus = "approved"
	ReviewRejected         ReviewStatus = "rejected"
)

// StartedState mirrors the started_auction field
type StartedState string

const (
	StartedNo    StartedState = "no"
	StartedYes   StartedState = "yes"
	StartedEnded StartedState = "ended"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// AuctionRequest represents a vehicle listed for auction
type AuctionRequest struct {
	ID                     string       `json:"id"`
	SellerID               string       `json:"seller_id"`
	VehicleName            string       `json:"vehicle_name"`
	Year                   int          `json:"year"`
	Mileage                int          `json:"mileage"`
	StartingPrice          int64        `json:"starting_price"`
	Status                 ReviewStatus `json:"status"`
	StartedAuction         StartedState `json:"started_auction"`
	AuctionStopped         bool         `json:"auction_stopped"`
	AssignedAuctionManager string       `json:"assigned_auction_manager"`
	WinnerID               *string      `json:"winner_id"`
	FinalPurchasePrice     *int64       `json:"final_purchase_price"`
	PaymentDeadline        *time.Time   `json:"payment_deadline"`
	PaymentFailed          bool         `json:"payment_failed"`
	FailedBuyerID          *string      `json:"failed_buyer_id"`
	IsReauctioned          bool         `json:"is_reauctioned"`
	ReauctionCount         int          `json:"reauction_count"`
	Version                int64        `json:"version"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}

// HasWinner reports whether settlement picked a winning buyer
func (a AuctionRequest) HasWinner() bool {
	return a.WinnerID != nil
}

// AuctionBid represents a buyer's bid on an auction
type AuctionBid struct {
	ID           string    `json:"id"`
	AuctionID    string    `json:"auction_id"`
	BuyerID      string    `json:"buyer_id"`
	BidAmount    int64     `json:"bid_amount"`
	BidTime      time.Time `json:"bid_time"`
	IsCurrentBid bool      `json:"is_current_bid"`
}

// Purchase is created when an auction closes with a winner
type Purchase struct {
	ID            string        `json:"id"`
	AuctionID     string        `json:"auction_id"`
	BuyerID       string        `json:"buyer_id"`
	SellerID      string        `json:"seller_id"`
	PurchasePrice int64         `json:"purchase_price"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

// Buyer holds the account flags settlement reads and writes
type Buyer struct {
	ID           string `json:"id"`
	IsBlocked    bool   `json:"is_blocked"`
	IsReported   bool   `json:"is_reported"`
	ReportReason string `json:"report_reason,omitempty"`
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation is the buyer/seller channel opened when an auction closes
type Conversation struct {
	ID        string    `json:"id"`
	AuctionID string    `json:"auction_id"`
	BuyerID   string    `json:"buyer_id"`
	SellerID  string    `json:"seller_id"`
	OpenedAt  time.Time `json:"opened_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
