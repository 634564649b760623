package discount

// Discount is a percentage off. A nil UserID means the discount is
// attached to whichever product references it; a non-nil UserID makes
// it a personal discount for that user.
type Discount struct {
	ID            string  `json:"id"`
	DiscountName  string  `json:"discount_name"`
	DiscountValue string  `json:"discount_value"` // NUMERIC -> string
	UserID        *string `json:"user_id,omitempty"`
}

// UpsertDiscountRequest payload for create/update.
// swagger:model UpsertDiscountRequest
type UpsertDiscountRequest struct {
	DiscountName  string  `json:"discount_name" binding:"required"`
	DiscountValue string  `json:"discount_value" binding:"required" example:"10"`
	UserID        *string `json:"user_id"`
}
