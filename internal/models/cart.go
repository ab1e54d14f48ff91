package models

// CartItem is one variant in a user's cart. Name and UnitPrice are resolved
// from the relational store when the item is added.
type CartItem struct {
	SneakerID uint    `json:"sneaker_id"`
	VariantID uint    `json:"variant_id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Cart is the per-user shopping cart kept in the document store.
type Cart struct {
	UserID uint       `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// Total returns the sum of all line totals.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
