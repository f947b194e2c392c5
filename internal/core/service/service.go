package service

import (
	"context"
	"errors"

	"github.com/akozadaev/po-api/internal/core/domain"
	"github.com/akozadaev/po-api/internal/core/port"
	"go.uber.org/zap"
)

// ListPageSize is the fixed page size of the order listing.
const ListPageSize = 10

type Service struct {
	repo   port.Repository
	logger *zap.Logger
}

func NewService(repo port.Repository, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:   repo,
		logger: logger,
	}, nil
}

func (s *Service) ListOrders(ctx context.Context, search string, page int) (*domain.OrderPage, error) {
	if page < 1 {
		page = 1
	}

	list, err := s.repo.ListOrders(ctx, search, page, ListPageSize)
	if err != nil {
		s.logger.Error("List orders", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		if !errors.Is(err, domain.ErrDataNotFound) {
			s.logger.Error("Read order", zap.Uint64("order", orderID), zap.Error(err))
		}
		return nil, err
	}
	return order, nil
}

func (s *Service) CreateOrder(ctx context.Context, patch domain.OrderPatch, items []domain.ItemSpec) (*domain.Order, error) {
	if err := s.validateSpecs(ctx, items, false); err != nil {
		return nil, err
	}

	// Total is computed from the request before the insert, so the header
	// and its items land with a consistent total in one transaction.
	total, err := domain.ItemsTotal(items)
	if err != nil {
		s.logger.Error("Derive total", zap.Error(err))
		return nil, domain.ErrInternal
	}

	order := &domain.Order{
		Number:    patch.Number,
		BuyerName: patch.BuyerName,
		Total:     total,
	}

	newOrder, err := s.repo.CreateOrder(ctx, order, items)
	if err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}

	return newOrder, nil
}

// UpdateOrder replaces the order header and reconciles its item set against
// the requested one inside a single transaction: request items carrying an
// id owned by the order update that row, everything else is inserted as a
// new item, and rows absent from the request are deleted. The total is then
// recomputed from the persisted items, not from client input.
func (s *Service) UpdateOrder(ctx context.Context, orderID uint64, patch domain.OrderPatch, items []domain.ItemSpec) (*domain.Order, error) {
	if err := s.validateSpecs(ctx, items, true); err != nil {
		return nil, err
	}

	order, err := s.repo.UpdateOrderItems(ctx, orderID,
		func(ctx context.Context, store port.ItemStore, order *domain.Order) error {
			existing, err := store.ItemIDs(ctx, order.ID)
			if err != nil {
				return err
			}
			owned := make(map[uint64]bool, len(existing))
			for _, id := range existing {
				owned[id] = true
			}

			// An id not owned by this order (another order's item, or a
			// fabricated one) falls through to insert, same as no id at all.
			matched := make([]uint64, 0, len(items))
			for _, spec := range items {
				if spec.ID != nil && owned[*spec.ID] {
					if err := store.UpdateItem(ctx, *spec.ID, spec.ItemPatch); err != nil {
						return err
					}
					matched = append(matched, *spec.ID)
					continue
				}
				newID, err := store.CreateItem(ctx, order.ID, spec.ItemPatch)
				if err != nil {
					return err
				}
				matched = append(matched, newID)
			}

			if err := store.DeleteItemsNotIn(ctx, order.ID, matched); err != nil {
				return err
			}

			total, err := store.SumItems(ctx, order.ID)
			if err != nil {
				return err
			}

			order.Number = patch.Number
			order.BuyerName = patch.BuyerName
			order.Total = total.Round(2)
			return nil
		})
	if err != nil {
		if !errors.Is(err, domain.ErrDataNotFound) {
			s.logger.Error("Update order", zap.Uint64("order", orderID), zap.Error(err))
		}
		return nil, err
	}

	return order, nil
}

func (s *Service) DeleteOrder(ctx context.Context, orderID uint64) error {
	err := s.repo.DeleteOrder(ctx, orderID)
	if err != nil {
		if !errors.Is(err, domain.ErrDataNotFound) {
			s.logger.Error("Delete order", zap.Uint64("order", orderID), zap.Error(err))
		}
		return err
	}
	return nil
}

// DeleteOrders removes all listed orders or none of them. A single unknown
// id rolls the whole batch back.
func (s *Service) DeleteOrders(ctx context.Context, orderIDs []uint64) error {
	err := s.repo.DeleteOrders(ctx, orderIDs)
	if err != nil {
		if !errors.Is(err, domain.ErrDataNotFound) {
			s.logger.Error("Delete orders", zap.Uint64s("orders", orderIDs), zap.Error(err))
		}
		return err
	}
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	list, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("List categories", zap.Error(err))
		return nil, err
	}
	return list, nil
}

// validateSpecs runs the existence checks that need the store: every category
// reference must resolve, and on the update path a supplied item id must name
// an existing item. Ownership of that item is not checked here - the
// reconciler treats a foreign id as an insert.
func (s *Service) validateSpecs(ctx context.Context, items []domain.ItemSpec, allowIDs bool) error {
	verr := domain.NewValidationError()

	for i, spec := range items {
		ok, err := s.repo.CategoryExists(ctx, spec.CategoryID)
		if err != nil {
			s.logger.Error("Check category", zap.Uint64("category", spec.CategoryID), zap.Error(err))
			return domain.ErrInternal
		}
		if !ok {
			verr.AddItem(i, "category_id", "The selected category is invalid.")
		}

		if spec.ID == nil {
			continue
		}
		if !allowIDs {
			verr.AddItem(i, "id", "The id field is not allowed on creation.")
			continue
		}
		ok, err = s.repo.ItemExists(ctx, *spec.ID)
		if err != nil {
			s.logger.Error("Check item", zap.Uint64("item", *spec.ID), zap.Error(err))
			return domain.ErrInternal
		}
		if !ok {
			verr.AddItem(i, "id", "The selected item is invalid.")
		}
	}

	if !verr.Empty() {
		return verr
	}
	return nil
}
