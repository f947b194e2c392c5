package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/akozadaev/po-api/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
)

// txItemStore is the port.ItemStore implementation handed to the reconcile
// callback. Every statement runs on the transaction opened by
// Repository.UpdateOrderItems.
type txItemStore struct {
	qb *sq.StatementBuilderType
	tx pgx.Tx
}

func (s *txItemStore) ItemIDs(ctx context.Context, orderID uint64) ([]uint64, error) {
	statement := s.qb.
		Select("id").
		From("purchase_order_items").
		Where(sq.Eq{"purchase_order_id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *txItemStore) CreateItem(ctx context.Context, orderID uint64, patch domain.ItemPatch) (uint64, error) {
	now := time.Now()
	statement := s.qb.
		Insert("purchase_order_items").
		Columns("purchase_order_id", "description", "quantity", "unit_price", "category_id",
			"created_at", "updated_at").
		Values(orderID, patch.Description, patch.Quantity, patch.UnitPrice, patch.CategoryID, now, now).
		Suffix("RETURNING id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return 0, err
	}

	var id uint64
	err = s.tx.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *txItemStore) UpdateItem(ctx context.Context, itemID uint64, patch domain.ItemPatch) error {
	statement := s.qb.
		Update("purchase_order_items").
		Set("description", patch.Description).
		Set("quantity", patch.Quantity).
		Set("unit_price", patch.UnitPrice).
		Set("category_id", patch.CategoryID).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": itemID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	_, err = s.tx.Exec(ctx, sql, args...)
	return err
}

func (s *txItemStore) DeleteItemsNotIn(ctx context.Context, orderID uint64, keep []uint64) error {
	statement := s.qb.
		Delete("purchase_order_items").
		Where(sq.Eq{"purchase_order_id": orderID})
	if len(keep) > 0 {
		statement = statement.Where(sq.NotEq{"id": keep})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	_, err = s.tx.Exec(ctx, sql, args...)
	return err
}

func (s *txItemStore) SumItems(ctx context.Context, orderID uint64) (decimal.Decimal, error) {
	statement := s.qb.
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		From("purchase_order_items").
		Where(sq.Eq{"purchase_order_id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return decimal.Decimal{}, err
	}

	var total decimal.Decimal
	err = s.tx.QueryRow(ctx, sql, args...).Scan(&total)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return total, nil
}
