package models

import "time"

// Meta is a generic key-value map for transaction metadata
type Meta map[string]interface{}

// Transaction records a payment attempt against a booking.
type Transaction struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"userid,omitempty" json:"userid,omitempty"`
	BookingID      string    `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	Type           string    `bson:"type" json:"type"` // payment, refund
	Amount         float64   `bson:"amount" json:"amount"`
	Currency       string    `bson:"currency" json:"currency"`
	Method         string    `bson:"method" json:"method"` // card, wallet
	Status         string    `bson:"state" json:"state"`   // initiated, success, failed, refunded
	ProviderSessID string    `bson:"provider_session,omitempty" json:"provider_session,omitempty"`
	ProviderTxnID  string    `bson:"provider_txn,omitempty" json:"provider_txn,omitempty"`
	RefundedTxn    string    `bson:"refunded_txn,omitempty" json:"refunded_txn,omitempty"`
	RefundReason   string    `bson:"refund_reason,omitempty" json:"refund_reason,omitempty"`
	IdempotencyKey string    `bson:"external_ref,omitempty" json:"external_ref,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
	Meta           Meta      `bson:"meta,omitempty" json:"meta,omitempty"`
}

// Account is a customer's billing account record.
type Account struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	UserID        string    `bson:"userid" json:"userid"`
	Currency      string    `bson:"currency" json:"currency"`
	Status        string    `bson:"status" json:"status"`
	CachedBalance float64   `bson:"cached_balance" json:"cached_balance"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// IdempotencyRecord represents an idempotency key record stored in Mongo.
type IdempotencyRecord struct {
	Key         string                 `bson:"key" json:"key"`
	Method      string                 `bson:"method" json:"method"`
	Path        string                 `bson:"path" json:"path"`
	UserID      string                 `bson:"userid" json:"userid"`
	RequestHash string                 `bson:"request_hash" json:"request_hash"`
	Response    map[string]interface{} `bson:"response,omitempty" json:"response,omitempty"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
	ExpiresAt   time.Time              `bson:"expires_at" json:"expires_at"`
}
