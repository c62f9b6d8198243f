package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drapehaus/drapehaus/internal/shared"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByID(ctx context.Context, id int64) (*Admin, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	return r.find(ctx, `SELECT id, email, name, password_hash, is_active, created_at
		FROM admins WHERE email = $1`, email)
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Admin, error) {
	return r.find(ctx, `SELECT id, email, name, password_hash, is_active, created_at
		FROM admins WHERE id = $1`, id)
}

func (r *repository) find(ctx context.Context, query string, arg any) (*Admin, error) {
	var a Admin
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.IsActive, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
