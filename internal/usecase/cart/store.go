package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domcart "example.com/cart-sync/internal/domain/cart"
	domproduct "example.com/cart-sync/internal/domain/product"
)

// SnapshotKey is the fixed namespaced key cart snapshots are stored under.
const SnapshotKey = "cart:v1:items"

// Policy selects how cart mutations treat remote stock.
type Policy string

const (
	// PolicyReadOnly consults remote stock as an upper bound, never
	// mutating it. Stock is authoritative elsewhere.
	PolicyReadOnly Policy = "readonly"
	// PolicyReserving treats the cart as a temporary hold: adds commit a
	// decremented stock count remotely, removes and decreases release it.
	PolicyReserving Policy = "reserving"
)

const defaultRemoteTimeout = 5 * time.Second

const (
	msgOutOfStock    = "Requested quantity is out of stock"
	msgAddFailed     = "Could not add the product"
	msgRemoveFailed  = "Could not remove the product"
	msgUpdateFailed  = "Could not change the product amount"
	msgInvalidAmount = "Product amount must be at least 1"
	msgStockRelease  = "Could not release reserved stock"
)

// Store owns the authoritative in-memory cart. Mutations are serialized by a
// mutex held for the full operation, remote round-trips included, so a second
// call queues behind the first and never observes a half-applied cart. Every
// mutation re-fetches stock, applies its change to a copy, persists the copy,
// and only then swaps it in: a failure at any step leaves the cart exactly as
// it was before the call.
type Store struct {
	mu    sync.Mutex
	items []domcart.LineItem

	inventory InventoryClient
	snapshots SnapshotStore
	notifier  Notifier
	logger    *slog.Logger

	policy        Policy
	remoteTimeout time.Duration
}

// Options tune store construction.
type Options struct {
	Policy        Policy        // defaults to PolicyReadOnly
	RemoteTimeout time.Duration // per remote call, defaults to 5s
}

// NewStore builds a Store and hydrates it from the snapshot store. A missing
// or corrupt snapshot degrades to an empty cart, never a startup failure.
func NewStore(ctx context.Context, inventory InventoryClient, snapshots SnapshotStore, notifier Notifier, logger *slog.Logger, opts Options) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Policy == "" {
		opts.Policy = PolicyReadOnly
	}
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = defaultRemoteTimeout
	}
	s := &Store{
		inventory:     inventory,
		snapshots:     snapshots,
		notifier:      notifier,
		logger:        logger,
		policy:        opts.Policy,
		remoteTimeout: opts.RemoteTimeout,
	}
	s.hydrate(ctx)
	return s
}

// Items returns an ordered snapshot of the cart. The returned slice is a
// copy; mutating it does not affect the store.
func (s *Store) Items() []domcart.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domcart.Clone(s.items)
}

// AddProduct increases the cart amount for the product by 1, inserting a new
// line item with amount 1 if absent, provided stock suffices.
func (s *Store) AddProduct(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quote, err := s.getStock(ctx, productID)
	if err != nil {
		s.notify(ctx, CategoryAddFailed, msgAddFailed)
		return err
	}

	idx := domcart.Index(s.items, productID)
	var current int64
	if idx >= 0 {
		current = s.items[idx].Amount
	}

	if s.policy == PolicyReserving {
		if quote.Amount <= 0 {
			s.notify(ctx, CategoryOutOfStock, msgOutOfStock)
			return domcart.ErrOutOfStock
		}
	} else if current+1 > quote.Amount {
		s.notify(ctx, CategoryOutOfStock, msgOutOfStock)
		return domcart.ErrOutOfStock
	}

	next := domcart.Clone(s.items)
	if idx >= 0 {
		next[idx].Amount = current + 1
	} else {
		p, err := s.getProduct(ctx, productID)
		if err != nil {
			s.notify(ctx, CategoryAddFailed, msgAddFailed)
			return err
		}
		next = append(next, domcart.LineItem{
			ProductID: p.ID,
			Amount:    1,
			Title:     p.Title,
			Price:     p.Price,
			Image:     p.Image,
		})
	}

	if s.policy == PolicyReserving {
		if err := s.setStock(ctx, productID, quote.Amount-1); err != nil {
			s.notify(ctx, CategoryAddFailed, msgAddFailed)
			return err
		}
	}

	if err := s.commit(ctx, next); err != nil {
		if s.policy == PolicyReserving {
			s.restoreStock(ctx, productID, quote.Amount)
		}
		s.notify(ctx, CategoryAddFailed, msgAddFailed)
		return err
	}
	s.items = next
	return nil
}

// RemoveProduct deletes the line item for the product. The local removal is
// persisted first; under the reserving policy the held stock is then released
// best-effort. A failed release returns ErrStockRelease but does not
// un-remove the item.
func (s *Store) RemoveProduct(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := domcart.Index(s.items, productID)
	if idx < 0 {
		s.notify(ctx, CategoryRemoveFailed, msgRemoveFailed)
		return domcart.ErrProductNotFound
	}
	removed := s.items[idx].Amount

	next := make([]domcart.LineItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)

	if err := s.commit(ctx, next); err != nil {
		s.notify(ctx, CategoryRemoveFailed, msgRemoveFailed)
		return err
	}
	s.items = next

	if s.policy == PolicyReserving {
		if err := s.releaseStock(ctx, productID, removed); err != nil {
			s.logger.Warn("stock release failed after removal",
				"product_id", productID, "amount", removed, "error", err)
			s.notify(ctx, CategoryStockRelease, msgStockRelease)
			return fmt.Errorf("%w: %v", domcart.ErrStockRelease, err)
		}
	}
	return nil
}

// UpdateProductAmount sets the line item amount. Amounts below 1 are
// rejected, amount 0 included. Decreases always succeed for an existing item;
// increases re-check stock first.
func (s *Store) UpdateProductAmount(ctx context.Context, productID, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount < 1 {
		s.notify(ctx, CategoryInvalidAmount, msgInvalidAmount)
		return domcart.ErrInvalidAmount
	}
	idx := domcart.Index(s.items, productID)
	if idx < 0 {
		s.notify(ctx, CategoryUpdateFailed, msgUpdateFailed)
		return domcart.ErrProductNotFound
	}
	current := s.items[idx].Amount
	if amount == current {
		return nil
	}

	// Stock level to restore should the snapshot write fail after a
	// remote commit.
	var reserved int64
	restore := false

	if amount > current {
		quote, err := s.getStock(ctx, productID)
		if err != nil {
			s.notify(ctx, CategoryUpdateFailed, msgUpdateFailed)
			return err
		}
		delta := amount - current
		if s.policy == PolicyReserving {
			if quote.Amount < delta {
				s.notify(ctx, CategoryOutOfStock, msgOutOfStock)
				return domcart.ErrOutOfStock
			}
			if err := s.setStock(ctx, productID, quote.Amount-delta); err != nil {
				s.notify(ctx, CategoryUpdateFailed, msgUpdateFailed)
				return err
			}
			reserved, restore = quote.Amount, true
		} else if quote.Amount < amount {
			s.notify(ctx, CategoryOutOfStock, msgOutOfStock)
			return domcart.ErrOutOfStock
		}
	} else if s.policy == PolicyReserving {
		// Decrease: always permitted, release the full delta.
		quote, err := s.getStock(ctx, productID)
		if err != nil {
			s.notify(ctx, CategoryUpdateFailed, msgUpdateFailed)
			return err
		}
		if err := s.setStock(ctx, productID, quote.Amount+(current-amount)); err != nil {
			s.notify(ctx, CategoryUpdateFailed, msgUpdateFailed)
			return err
		}
		reserved, restore = quote.Amount, true
	}

	next := domcart.Clone(s.items)
	next[idx].Amount = amount
	if err := s.commit(ctx, next); err != nil {
		if restore {
			s.restoreStock(ctx, productID, reserved)
		}
		s.notify(ctx, CategoryUpdateFailed, msgUpdateFailed)
		return err
	}
	s.items = next
	return nil
}

func (s *Store) hydrate(ctx context.Context) {
	data, err := s.snapshots.Read(ctx, SnapshotKey)
	if err != nil {
		s.logger.Warn("cart snapshot read failed, starting empty", "error", err)
		return
	}
	if len(data) == 0 {
		return
	}
	var items []domcart.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("cart snapshot corrupt, starting empty", "error", err)
		return
	}
	s.items = items
}

func (s *Store) commit(ctx context.Context, items []domcart.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}
	if err := s.snapshots.Write(ctx, SnapshotKey, data); err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	return nil
}

func (s *Store) getStock(ctx context.Context, productID int64) (domproduct.StockQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()
	return s.inventory.GetStock(ctx, productID)
}

func (s *Store) setStock(ctx context.Context, productID, amount int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()
	return s.inventory.SetStock(ctx, productID, amount)
}

func (s *Store) getProduct(ctx context.Context, productID int64) (*domproduct.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()
	return s.inventory.GetProduct(ctx, productID)
}

// releaseStock hands back n reserved units.
func (s *Store) releaseStock(ctx context.Context, productID, n int64) error {
	quote, err := s.getStock(ctx, productID)
	if err != nil {
		return err
	}
	return s.setStock(ctx, productID, quote.Amount+n)
}

// restoreStock rolls a remote commit back after a local persist failure.
func (s *Store) restoreStock(ctx context.Context, productID, amount int64) {
	if err := s.setStock(ctx, productID, amount); err != nil {
		s.logger.Error("stock rollback failed",
			"product_id", productID, "amount", amount, "error", err)
	}
}

func (s *Store) notify(ctx context.Context, category Category, message string) {
	s.notifier.Notify(ctx, Notification{
		ID:       uuid.NewString(),
		Category: category,
		Message:  message,
	})
}
