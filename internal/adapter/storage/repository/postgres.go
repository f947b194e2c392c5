package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/akozadaev/po-api/internal/adapter/storage"
	"github.com/akozadaev/po-api/internal/core/domain"
	"github.com/akozadaev/po-api/internal/core/port"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

func (r *Repository) ListOrders(ctx context.Context, search string, page int, pageSize int) (*domain.OrderPage, error) {
	filter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if search == "" {
			return b
		}
		pattern := "%" + search + "%"
		return b.Where(sq.Or{
			sq.ILike{"po_number": pattern},
			sq.ILike{"buyer_name": pattern},
		})
	}

	countSt := filter(r.db.QueryBuilder.
		Select("count(*)").
		From("purchase_orders"))

	sql, args, err := countSt.ToSql()
	if err != nil {
		return nil, err
	}

	var total int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&total)
	if err != nil {
		return nil, err
	}

	listSt := filter(r.db.QueryBuilder.
		Select("id", "po_number", "buyer_name", "total", "created_at", "updated_at").
		From("purchase_orders")).
		OrderBy("id DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sql, args, err = listSt.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0, pageSize)
	for rows.Next() {
		order := domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.Number,
			&order.BuyerName,
			&order.Total,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.OrderPage{
		Orders:   list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select("id", "po_number", "buyer_name", "total", "created_at", "updated_at").
		From("purchase_orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&order.ID,
		&order.Number,
		&order.BuyerName,
		&order.Total,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	items, err := r.readOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *Repository) readOrderItems(ctx context.Context, orderID uint64) ([]*domain.OrderItem, error) {
	statement := r.db.QueryBuilder.
		Select("i.id", "i.purchase_order_id", "i.description", "i.quantity", "i.unit_price",
			"i.category_id", "i.created_at", "i.updated_at", "c.name").
		From("purchase_order_items i").
		Join("categories c ON c.id = i.category_id").
		Where(sq.Eq{"i.purchase_order_id": orderID}).
		OrderBy("i.id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.OrderItem, 0)
	for rows.Next() {
		item := domain.OrderItem{Category: &domain.Category{}}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.Description,
			&item.Quantity,
			&item.UnitPrice,
			&item.CategoryID,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Category.Name,
		)
		if err != nil {
			return nil, err
		}
		item.Category.ID = item.CategoryID
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order, items []domain.ItemSpec) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		now := time.Now()

		orderSt := r.db.QueryBuilder.
			Insert("purchase_orders").
			Columns("po_number", "buyer_name", "total", "created_at", "updated_at").
			Values(order.Number, order.BuyerName, order.Total, now, now).
			Suffix("RETURNING id, created_at, updated_at")

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		itemsSt := r.db.QueryBuilder.
			Insert("purchase_order_items").
			Columns("purchase_order_id", "description", "quantity", "unit_price", "category_id",
				"created_at", "updated_at")
		for _, item := range items {
			itemsSt = itemsSt.Values(order.ID, item.Description, item.Quantity, item.UnitPrice,
				item.CategoryID, now, now)
		}

		sql, args, err = itemsSt.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
	if err != nil {
		return nil, mapPgError(err)
	}

	return r.ReadOrder(ctx, order.ID)
}

// UpdateOrderItems loads the order header under a row lock, hands an item
// store bound to the same transaction to fn, and writes the header fields fn
// left in the order back on commit. Any error from fn rolls everything back.
func (r *Repository) UpdateOrderItems(ctx context.Context, orderID uint64, fn port.ReconcileFn) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		headSt := r.db.QueryBuilder.
			Select("id", "po_number", "buyer_name", "total", "created_at", "updated_at").
			From("purchase_orders").
			Where(sq.Eq{"id": orderID}).
			Suffix("FOR UPDATE")

		sql, args, err := headSt.ToSql()
		if err != nil {
			return err
		}

		order := domain.Order{}
		err = tx.QueryRow(ctx, sql, args...).Scan(
			&order.ID,
			&order.Number,
			&order.BuyerName,
			&order.Total,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			if err == pgx.ErrNoRows {
				return domain.ErrDataNotFound
			}
			return err
		}

		store := &txItemStore{qb: r.db.QueryBuilder, tx: tx}
		if err := fn(ctx, store, &order); err != nil {
			return err
		}

		updateSt := r.db.QueryBuilder.
			Update("purchase_orders").
			Set("po_number", order.Number).
			Set("buyer_name", order.BuyerName).
			Set("total", order.Total).
			Set("updated_at", time.Now()).
			Where(sq.Eq{"id": orderID})

		sql, args, err = updateSt.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
	if err != nil {
		return nil, mapPgError(err)
	}

	return r.ReadOrder(ctx, orderID)
}

func (r *Repository) DeleteOrder(ctx context.Context, orderID uint64) error {
	statement := r.db.QueryBuilder.
		Delete("purchase_orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	// Items go with the order through the FK cascade.
	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}

// DeleteOrders is all-or-nothing: when fewer rows match than ids were given,
// the transaction is rolled back and no order is deleted.
func (r *Repository) DeleteOrders(ctx context.Context, orderIDs []uint64) error {
	return pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.
			Delete("purchase_orders").
			Where(sq.Eq{"id": orderIDs})

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}

		ct, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if ct.RowsAffected() != int64(len(orderIDs)) {
			return domain.ErrDataNotFound
		}
		return nil
	})
}

func (r *Repository) ItemExists(ctx context.Context, itemID uint64) (bool, error) {
	return r.exists(ctx, "purchase_order_items", itemID)
}

func (r *Repository) CategoryExists(ctx context.Context, categoryID uint64) (bool, error) {
	return r.exists(ctx, "categories", categoryID)
}

func (r *Repository) exists(ctx context.Context, table string, id uint64) (bool, error) {
	statement := r.db.QueryBuilder.
		Select("1").
		From(table).
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func mapPgError(err error) error {
	if pgErr, ok := err.(*pgconn.PgError); ok {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation, pgerrcode.ForeignKeyViolation:
			return domain.ErrConflictingData
		}
	}
	return err
}
