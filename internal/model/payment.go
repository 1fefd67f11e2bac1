package model

import "time"

// Payment status values.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusFailed    = "failed"
)

// Payment records one checkout attempt for a set of market lists.
type Payment struct {
	ID            int64     `json:"id"`
	Reference     string    `json:"reference"`
	ListIDs       []string  `json:"list_ids"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	ReceiptNumber string    `json:"receipt_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
