// Package cart manages quotation drafts: priced line items a customer
// collects before ordering. Every price in a draft is a resolved snapshot;
// loading a draft never consults the live catalog or configuration.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/drapehaus/drapehaus/internal/catalog"
	"github.com/drapehaus/drapehaus/internal/pricing"
)

// ErrMalformedDraft marks a stored draft whose payload no longer matches the
// line item schema (legacy shape or corruption). Surfaced as a clear error
// instead of a shape mismatch deep in the UI.
var ErrMalformedDraft = errors.New("draft contains a malformed line item")

// ProductSource is the slice of the catalog the cart needs.
type ProductSource interface {
	GetProduct(ctx context.Context, id int64) (*catalog.Product, error)
}

// ConfigSource provides immutable pricing config snapshots.
type ConfigSource interface {
	Snapshot(ctx context.Context) (pricing.Config, error)
}

type Service struct {
	logger   *slog.Logger
	repo     Repository
	products ProductSource
	config   ConfigSource
	validate *validator.Validate
}

func NewService(logger *slog.Logger, repo Repository, products ProductSource, config ConfigSource) *Service {
	return &Service{
		logger:   logger,
		repo:     repo,
		products: products,
		config:   config,
		validate: validator.New(),
	}
}

func (s *Service) CreateDraft(ctx context.Context) (*Draft, error) {
	id, createdAt, err := s.repo.CreateDraft(ctx)
	if err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	return &Draft{ID: id, CreatedAt: createdAt, UpdatedAt: createdAt}, nil
}

// GetDraft loads and schema-validates a draft. Items that fail validation
// make the whole load fail with ErrMalformedDraft: a partially displayed
// draft would show a wrong total.
func (s *Service) GetDraft(ctx context.Context, id uuid.UUID) (*Draft, error) {
	createdAt, updatedAt, err := s.repo.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	raw, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list draft items: %w", err)
	}

	draft := &Draft{ID: id, CreatedAt: createdAt, UpdatedAt: updatedAt}
	for _, r := range raw {
		var item pricing.LineItem
		if err := json.Unmarshal(r.Payload, &item); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformedDraft, r.ID, err)
		}
		if err := s.validate.Struct(item); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformedDraft, r.ID, err)
		}
		draft.Items = append(draft.Items, DraftItem{
			ID:        r.ID,
			DraftID:   r.DraftID,
			Item:      item,
			CreatedAt: r.CreatedAt,
		})
	}
	return draft, nil
}

// Preview prices a request without persisting anything. This is the engine
// entry point the product page calls while the customer adjusts measurements.
func (s *Service) Preview(ctx context.Context, req QuoteRequest) (*pricing.LineItem, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	product, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.Quote(product.PricingModel(), cfg, req.WidthCm, req.HeightCm, req.Quantity)
}

// AddItem prices the request and appends the resulting line item to the
// draft. The stored payload is the engine output verbatim.
func (s *Service) AddItem(ctx context.Context, draftID uuid.UUID, req QuoteRequest) (*DraftItem, error) {
	if _, _, err := s.repo.GetDraft(ctx, draftID); err != nil {
		return nil, err
	}
	item, err := s.Preview(ctx, req)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode line item: %w", err)
	}
	id, err := s.repo.InsertItem(ctx, draftID, payload)
	if err != nil {
		return nil, fmt.Errorf("insert draft item: %w", err)
	}
	return &DraftItem{ID: id, DraftID: draftID, Item: *item, CreatedAt: time.Now().UTC()}, nil
}

func (s *Service) RemoveItem(ctx context.Context, draftID uuid.UUID, itemID int64) error {
	return s.repo.DeleteItem(ctx, draftID, itemID)
}

// Reprice rebuilds every line item from the current catalog and settings.
// New items replace the old ones atomically; the old payloads are gone, not
// edited. Items whose product vanished or no longer prices cleanly abort the
// reprice so the customer keeps the valid old draft.
func (s *Service) Reprice(ctx context.Context, draftID uuid.UUID) (*Draft, error) {
	draft, err := s.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	payloads := make([][]byte, 0, len(draft.Items))
	for _, old := range draft.Items {
		product, err := s.products.GetProduct(ctx, old.Item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("reprice product %d: %w", old.Item.ProductID, err)
		}
		item, err := pricing.Quote(product.PricingModel(), cfg,
			old.Item.WidthCm, old.Item.HeightCm, old.Item.OrderedQuantity)
		if err != nil {
			return nil, fmt.Errorf("reprice product %d: %w", old.Item.ProductID, err)
		}
		payload, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encode line item: %w", err)
		}
		payloads = append(payloads, payload)
	}

	if err := s.repo.ReplaceItems(ctx, draftID, payloads); err != nil {
		return nil, fmt.Errorf("replace draft items: %w", err)
	}
	return s.GetDraft(ctx, draftID)
}

// PruneStale removes drafts untouched for longer than ttl. Called from the
// background worker.
func (s *Service) PruneStale(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-ttl)
	removed, err := s.repo.DeleteStale(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune drafts: %w", err)
	}
	if removed > 0 {
		s.logger.Info("pruned stale quotation drafts", slog.Int64("removed", removed))
	}
	return removed, nil
}
