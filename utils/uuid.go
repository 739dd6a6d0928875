package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a random identifier for auctions, bids, purchases and notifications
func GenerateID() string {
	return uuid.NewString()
}
