package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	BookingID  string    `json:"bookingid" bson:"bookingid"`
	UserID     string    `json:"userId" bson:"userId"`
	VenueID    string    `json:"venueId,omitempty" bson:"venueId,omitempty"`
	ServiceIDs []string  `json:"serviceIds,omitempty" bson:"serviceIds,omitempty"`
	Dates      []string  `json:"dates" bson:"dates"` // YYYY-MM-DD
	Amount     float64   `json:"amount" bson:"amount"`
	Currency   string    `json:"currency" bson:"currency"`
	Status     string    `json:"status" bson:"status"`
	TxnID      string    `json:"txnId,omitempty" bson:"txnId,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}
