package cart

// LineItem is one product entry in the cart. Amount is always >= 1; an item
// that would reach amount 0 is removed instead. Descriptive fields come from
// the inventory service and are carried opaquely.
type LineItem struct {
	ProductID int64   `json:"product_id"`
	Amount    int64   `json:"amount"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// Index returns the position of the item with the given product ID, or -1.
func Index(items []LineItem, productID int64) int {
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone copies the item list so callers can mutate the copy freely.
func Clone(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
