package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, owner_id, title, description, price_per_day, price_3_days, price_7_days, cancellation_policy, city, neighborhood, category, is_active, status, created_on, updated_on`

func scanItem(row interface{ Scan(...any) error }) (*domain.Item, error) {
	it := &domain.Item{}
	var price3, price7 sql.NullFloat64
	err := row.Scan(&it.ID, &it.OwnerID, &it.Title, &it.Description, &it.PricePerDay, &price3, &price7, &it.CancellationPolicy, &it.City, &it.Neighborhood, &it.Category, &it.IsActive, &it.Status, &it.CreatedOn, &it.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if price3.Valid {
		it.Price3Days = &price3.Float64
	}
	if price7.Valid {
		it.Price7Days = &price7.Float64
	}
	return it, nil
}

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (id, owner_id, title, description, price_per_day, price_3_days, price_7_days, cancellation_policy, city, neighborhood, category, is_active, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	now := time.Now()
	it.CreatedOn = now
	it.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, it.ID, it.OwnerID, it.Title, it.Description, it.PricePerDay, nullFloat(it.Price3Days), nullFloat(it.Price7Days), it.CancellationPolicy, it.City, it.Neighborhood, it.Category, it.IsActive, it.Status, now, now)
	return err
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET title=$2, description=$3, price_per_day=$4, price_3_days=$5, price_7_days=$6, cancellation_policy=$7, city=$8, neighborhood=$9, category=$10, updated_on=$11 WHERE id=$1`
	_, err := r.db.ExecContext(ctx, query, it.ID, it.Title, it.Description, it.PricePerDay, nullFloat(it.Price3Days), nullFloat(it.Price7Days), it.CancellationPolicy, it.City, it.Neighborhood, it.Category, time.Now())
	return err
}

func (r *itemRepository) SetModeration(ctx context.Context, id string, status domain.ItemStatus, active bool) (bool, error) {
	query := `UPDATE items SET status=$2, is_active=$3, updated_on=$4 WHERE id=$1`
	res, err := r.db.ExecContext(ctx, query, id, status, active, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *itemRepository) ListActive(ctx context.Context, city string, page, pageSize int32) ([]domain.Item, int32, error) {
	offset := (page - 1) * pageSize
	base := `FROM items WHERE is_active = true`
	args := []interface{}{}
	if city != "" {
		base += ` AND city = $1`
		args = append(args, city)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	limitIdx := len(args) + 1
	query := fmt.Sprintf("SELECT %s %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d", itemColumns, base, limitIdx, limitIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := collectItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *itemRepository) ListPendingModeration(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE status = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, domain.ItemStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
