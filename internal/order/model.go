package order

import "time"

const (
	StatusOpen      = "open"
	StatusCompleted = "completed"
)

// Order doubles as the user's cart while open; once a payment exists it
// is a historical, read-only order.
type Order struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"` // NUMERIC -> string
	Address     *string   `json:"address,omitempty"`
	PaymentType *string   `json:"payment_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CartItem is a cart line joined with its product for display.
type CartItem struct {
	ID            string `json:"id"`
	OrderID       string `json:"order_id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Price         string `json:"price"`
	DiscountValue string `json:"discount_value"`
	Quantity      int    `json:"quantity"`
}
