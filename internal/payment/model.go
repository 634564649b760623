package payment

import "time"

// Payment records that an order was paid. Its existence marks the
// order completed; rows are written only by checkout.
type Payment struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	Amount      string    `json:"amount"` // NUMERIC -> string
	PaymentDate time.Time `json:"payment_date"`
}
