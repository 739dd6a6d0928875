package events

import "time"

// Kind identifies what happened to an auction
type Kind string

const (
	AuctionStarted     Kind = "auction_started"
	BidPlaced          Kind = "bid_placed"
	AuctionStopped     Kind = "auction_stopped"
	AuctionReauctioned Kind = "auction_reauctioned"
	PaymentCompleted   Kind = "payment_completed"
	PaymentOverdue     Kind = "payment_overdue"
)

// Event is the JSON frame pushed to auction subscribers
type Event struct {
	Type      Kind      `json:"type"`
	AuctionID string    `json:"auction_id"`
	Data      any       `json:"data,omitempty"`
	At        time.Time `json:"at"`
}

//go:generate mockgen -source=events.go -destination=mock_events.go -package=events

// Publisher fans events out to interested parties. Publish must not block.
type Publisher interface {
	Publish(e Event)
}

// Discard is a Publisher that drops every event
type Discard struct{}

func (Discard) Publish(Event) {}
