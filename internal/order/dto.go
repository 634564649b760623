package order

// CreateOrderItem is one initial line of a new order.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID string `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int    `json:"quantity"  example:"2"`
}

// CreateOrderRequest payload of order creation.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	UserID string            `json:"user_id" example:"b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"`
	Items  []CreateOrderItem `json:"items"`
}

// CheckoutRequest payload of PUT /orders/:id.
// swagger:model CheckoutRequest
type CheckoutRequest struct {
	Address     string `json:"address" example:"Lenina 1, ap. 5"`
	PaymentType string `json:"payment_type" example:"cash"`
}

// AddItemRequest payload of POST /cart.
// swagger:model AddItemRequest
type AddItemRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantityRequest payload of PUT /cart/:id.
// swagger:model UpdateQuantityRequest
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}
