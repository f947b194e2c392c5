package repository

import (
	"context"

	"github.com/akozadaev/po-api/internal/core/domain"
)

func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name").
		From("categories").
		OrderBy("id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Category, 0)
	for rows.Next() {
		category := domain.Category{}
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		list = append(list, &category)
	}
	return list, rows.Err()
}
