package product

// Product carries the descriptive fields served by the inventory service.
type Product struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// StockQuote is the stock level of one product at the moment it was fetched.
// Quotes are never cached beyond a single cart operation.
type StockQuote struct {
	ProductID int64 `json:"id"`
	Amount    int64 `json:"amount"`
}
