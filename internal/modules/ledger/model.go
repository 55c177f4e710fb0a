package ledger

// OrderRecord is a full order snapshot appended by the best-selling flow
// after a successful stock decrement. Field names follow the storefront
// payload, not this module's storage.
type OrderRecord struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	Subtotal  float64 `json:"subtotal"`
	Category  string  `json:"category"`
	Discount  int     `json:"discount"`
	CreatedAt string  `json:"createdAt"`
}
