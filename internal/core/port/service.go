package port

import (
	"context"

	"github.com/akozadaev/po-api/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

type Service interface {
	ListOrders(ctx context.Context, search string, page int) (*domain.OrderPage, error)
	GetOrder(ctx context.Context, orderID uint64) (*domain.Order, error)
	CreateOrder(ctx context.Context, patch domain.OrderPatch, items []domain.ItemSpec) (*domain.Order, error)
	UpdateOrder(ctx context.Context, orderID uint64, patch domain.OrderPatch, items []domain.ItemSpec) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID uint64) error
	DeleteOrders(ctx context.Context, orderIDs []uint64) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
