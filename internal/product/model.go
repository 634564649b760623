package product

// Product is a catalog item. Price and weight are NUMERIC in Postgres
// and kept as strings on the wire to avoid float rounding; pricing
// arithmetic parses them into decimals.
type Product struct {
	ID          string  `json:"id"`
	ProductName string  `json:"product_name"`
	Description string  `json:"description,omitempty"`
	Price       string  `json:"price"`
	Weight      string  `json:"weight"`
	CategoryID  *string `json:"category_id,omitempty"`
	DiscountID  *string `json:"discount_id,omitempty"`
	PictureURL  string  `json:"picture_url,omitempty"`

	// Joined for listings; empty on writes.
	CategoryName  *string `json:"category_name,omitempty"`
	DiscountValue *string `json:"discount_value,omitempty"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// UpsertProductRequest payload for create/update.
// swagger:model UpsertProductRequest
type UpsertProductRequest struct {
	ProductName string  `json:"product_name" example:"Mechanical Keyboard"`
	Description string  `json:"description"  example:"RGB 60%"`
	Price       string  `json:"price"        example:"199.90"`
	Weight      string  `json:"weight"       example:"0.850"`
	CategoryID  *string `json:"category_id"`
	DiscountID  *string `json:"discount_id"`
	PictureURL  string  `json:"picture_url"`
}
