package port

import (
	"context"

	"github.com/akozadaev/po-api/internal/core/domain"
	"github.com/govalues/decimal"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	// Orders
	ListOrders(ctx context.Context, search string, page int, pageSize int) (*domain.OrderPage, error)
	ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error)
	CreateOrder(ctx context.Context, order *domain.Order, items []domain.ItemSpec) (*domain.Order, error)
	UpdateOrderItems(ctx context.Context, orderID uint64, fn ReconcileFn) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID uint64) error
	DeleteOrders(ctx context.Context, orderIDs []uint64) error

	// Items
	ItemExists(ctx context.Context, itemID uint64) (bool, error)

	// Categories
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CategoryExists(ctx context.Context, categoryID uint64) (bool, error)
}

// ReconcileFn runs inside the transaction opened by UpdateOrderItems.
// It gets an item store bound to that transaction and the current order
// header; header fields changed by the callback are written back together
// with the commit. An error rolls the whole transaction back.
type ReconcileFn func(ctx context.Context, store ItemStore, order *domain.Order) error

// ItemStore is the transactional view over one order's items.
type ItemStore interface {
	ItemIDs(ctx context.Context, orderID uint64) ([]uint64, error)
	CreateItem(ctx context.Context, orderID uint64, patch domain.ItemPatch) (uint64, error)
	UpdateItem(ctx context.Context, itemID uint64, patch domain.ItemPatch) error
	DeleteItemsNotIn(ctx context.Context, orderID uint64, keep []uint64) error
	// SumItems computes Σ(quantity × unit_price) over the order's current
	// items as a server-side aggregate.
	SumItems(ctx context.Context, orderID uint64) (decimal.Decimal, error)
}
