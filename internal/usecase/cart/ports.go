package cart

import (
	"context"

	domproduct "example.com/cart-sync/internal/domain/product"
)

// InventoryClient is the remote source of truth for stock levels and
// product details.
type InventoryClient interface {
	GetStock(ctx context.Context, productID int64) (domproduct.StockQuote, error)
	SetStock(ctx context.Context, productID int64, amount int64) error
	GetProduct(ctx context.Context, productID int64) (*domproduct.Product, error)
}

// SnapshotStore is durable key-value byte storage for cart snapshots.
// Read returns (nil, nil) when the key is absent.
type SnapshotStore interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}

// Category classifies a notification for the surface that renders it.
type Category string

const (
	CategoryOutOfStock    Category = "out_of_stock"
	CategoryAddFailed     Category = "add_failed"
	CategoryRemoveFailed  Category = "remove_failed"
	CategoryUpdateFailed  Category = "update_failed"
	CategoryInvalidAmount Category = "invalid_amount"
	CategoryStockRelease  Category = "stock_release"
)

// Notification is one human-readable outcome message. Only failure paths
// produce notifications.
type Notification struct {
	ID       string
	Category Category
	Message  string
}

// Notifier receives outcome messages destined for the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
