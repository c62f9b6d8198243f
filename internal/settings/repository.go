package settings

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads and writes the flat key→numeric pricing configuration
// table the admin dashboard edits.
type Repository interface {
	Values(ctx context.Context) (map[string]float64, error)
	Upsert(ctx context.Context, key string, value float64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Values(ctx context.Context) (map[string]float64, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM pricing_settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]float64)
	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

func (r *repository) Upsert(ctx context.Context, key string, value float64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pricing_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value)
	return err
}
