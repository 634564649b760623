package category

// Category groups products; a product belongs to at most one.
// swagger:model Category
type Category struct {
	ID           string `json:"id"`
	CategoryName string `json:"category_name"`
}
