package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drapehaus/drapehaus/internal/platform/db"
)

var ErrNotFound = errors.New("record not found")

// rawItem is a draft item before schema validation; the payload stays opaque
// until the service checks its shape.
type rawItem struct {
	ID        int64
	DraftID   uuid.UUID
	Payload   []byte
	CreatedAt time.Time
}

type Repository interface {
	CreateDraft(ctx context.Context) (uuid.UUID, time.Time, error)
	GetDraft(ctx context.Context, id uuid.UUID) (createdAt, updatedAt time.Time, err error)
	ListItems(ctx context.Context, draftID uuid.UUID) ([]rawItem, error)
	InsertItem(ctx context.Context, draftID uuid.UUID, payload []byte) (int64, error)
	DeleteItem(ctx context.Context, draftID uuid.UUID, itemID int64) error
	ReplaceItems(ctx context.Context, draftID uuid.UUID, payloads [][]byte) error
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) CreateDraft(ctx context.Context) (uuid.UUID, time.Time, error) {
	id := uuid.New()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO quotation_drafts (id, created_at, updated_at) VALUES ($1, $2, $2)`,
		id, now)
	if err != nil {
		return uuid.Nil, time.Time{}, err
	}
	return id, now, nil
}

func (r *repository) GetDraft(ctx context.Context, id uuid.UUID) (time.Time, time.Time, error) {
	var createdAt, updatedAt time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT created_at, updated_at FROM quotation_drafts WHERE id = $1`, id).
		Scan(&createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, time.Time{}, ErrNotFound
	}
	return createdAt, updatedAt, err
}

func (r *repository) ListItems(ctx context.Context, draftID uuid.UUID) ([]rawItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, draft_id, payload, created_at FROM quotation_draft_items
		 WHERE draft_id = $1 ORDER BY id ASC`, draftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []rawItem
	for rows.Next() {
		var item rawItem
		if err := rows.Scan(&item.ID, &item.DraftID, &item.Payload, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) InsertItem(ctx context.Context, draftID uuid.UUID, payload []byte) (int64, error) {
	if !json.Valid(payload) {
		return 0, errors.New("draft item payload is not valid JSON")
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO quotation_draft_items (draft_id, payload, created_at)
		VALUES ($1, $2, NOW()) RETURNING id`,
		draftID, payload).Scan(&id)
	if err != nil {
		return 0, err
	}
	_, err = r.pool.Exec(ctx, `UPDATE quotation_drafts SET updated_at = NOW() WHERE id = $1`, draftID)
	return id, err
}

func (r *repository) DeleteItem(ctx context.Context, draftID uuid.UUID, itemID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM quotation_draft_items WHERE draft_id = $1 AND id = $2`, draftID, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	_, err = r.pool.Exec(ctx, `UPDATE quotation_drafts SET updated_at = NOW() WHERE id = $1`, draftID)
	return err
}

// ReplaceItems swaps the whole item set atomically; used by repricing so a
// reader never observes a half-repriced draft.
func (r *repository) ReplaceItems(ctx context.Context, draftID uuid.UUID, payloads [][]byte) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM quotation_draft_items WHERE draft_id = $1`, draftID); err != nil {
			return err
		}
		for _, payload := range payloads {
			if _, err := tx.Exec(ctx, `
				INSERT INTO quotation_draft_items (draft_id, payload, created_at)
				VALUES ($1, $2, NOW())`, draftID, payload); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx, `UPDATE quotation_drafts SET updated_at = NOW() WHERE id = $1`, draftID)
		return err
	})
}

func (r *repository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM quotation_drafts WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
