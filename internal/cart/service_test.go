package cart

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drapehaus/drapehaus/internal/catalog"
	"github.com/drapehaus/drapehaus/internal/pricing"
)

type mockRepository struct {
	drafts map[uuid.UUID]time.Time
	items  map[uuid.UUID][]rawItem
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		drafts: make(map[uuid.UUID]time.Time),
		items:  make(map[uuid.UUID][]rawItem),
		nextID: 1,
	}
}

func (m *mockRepository) CreateDraft(ctx context.Context) (uuid.UUID, time.Time, error) {
	id := uuid.New()
	now := time.Now().UTC()
	m.drafts[id] = now
	return id, now, nil
}

func (m *mockRepository) GetDraft(ctx context.Context, id uuid.UUID) (time.Time, time.Time, error) {
	created, ok := m.drafts[id]
	if !ok {
		return time.Time{}, time.Time{}, ErrNotFound
	}
	return created, created, nil
}

func (m *mockRepository) ListItems(ctx context.Context, draftID uuid.UUID) ([]rawItem, error) {
	return m.items[draftID], nil
}

func (m *mockRepository) InsertItem(ctx context.Context, draftID uuid.UUID, payload []byte) (int64, error) {
	id := m.nextID
	m.nextID++
	m.items[draftID] = append(m.items[draftID], rawItem{
		ID: id, DraftID: draftID, Payload: payload, CreatedAt: time.Now().UTC(),
	})
	return id, nil
}

func (m *mockRepository) DeleteItem(ctx context.Context, draftID uuid.UUID, itemID int64) error {
	items := m.items[draftID]
	for i, item := range items {
		if item.ID == itemID {
			m.items[draftID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *mockRepository) ReplaceItems(ctx context.Context, draftID uuid.UUID, payloads [][]byte) error {
	m.items[draftID] = nil
	for _, p := range payloads {
		if _, err := m.InsertItem(ctx, draftID, p); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	for id, created := range m.drafts {
		if created.Before(cutoff) {
			delete(m.drafts, id)
			delete(m.items, id)
			removed++
		}
	}
	return removed, nil
}

type mockProducts struct {
	products map[int64]*catalog.Product
}

func (m *mockProducts) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

type mockConfig struct {
	cfg pricing.Config
}

func (m *mockConfig) Snapshot(ctx context.Context) (pricing.Config, error) {
	return m.cfg, nil
}

func newTestService() (*Service, *mockRepository, *mockProducts, *mockConfig) {
	repo := newMockRepository()
	products := &mockProducts{products: map[int64]*catalog.Product{
		1: {
			ID:           1,
			SKU:          "CU-001",
			Name:         "Linen Curtain",
			Slug:         "linen-curtain",
			CategoryID:   1,
			CategoryCode: "curtains",
			Unit:         pricing.UnitLinearMeter,
			Method:       pricing.MethodLinear,
			PricePerUnit: 500,
			IsActive:     true,
		},
	}}
	config := &mockConfig{cfg: pricing.Config{
		VATRatePercent:        7,
		WasteFactorByCategory: map[string]float64{"curtains": 1.2},
	}}
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo, products, config)
	return svc, repo, products, config
}

func TestPreview(t *testing.T) {
	svc, _, _, _ := newTestService()

	item, err := svc.Preview(context.Background(), QuoteRequest{
		ProductID: 1, WidthCm: 150, HeightCm: 200, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 963.00, item.Total)
}

func TestAddItemPersistsEngineOutputVerbatim(t *testing.T) {
	svc, repo, _, _ := newTestService()

	draft, err := svc.CreateDraft(context.Background())
	require.NoError(t, err)

	added, err := svc.AddItem(context.Background(), draft.ID, QuoteRequest{
		ProductID: 1, WidthCm: 150, HeightCm: 200, Quantity: 1,
	})
	require.NoError(t, err)

	stored := repo.items[draft.ID]
	require.Len(t, stored, 1)

	var fromStore pricing.LineItem
	require.NoError(t, json.Unmarshal(stored[0].Payload, &fromStore))
	require.Equal(t, added.Item, fromStore)

	loaded, err := svc.GetDraft(context.Background(), draft.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, added.Item, loaded.Items[0].Item)
	assert.Equal(t, 963.00, loaded.Total())
}

func TestGetDraftRejectsMalformedPayload(t *testing.T) {
	svc, repo, _, _ := newTestService()

	draft, err := svc.CreateDraft(context.Background())
	require.NoError(t, err)

	// A legacy-shaped blob that decodes but fails schema validation.
	_, err = repo.InsertItem(context.Background(), draft.ID, []byte(`{"productId": 1, "price": 12}`))
	require.NoError(t, err)

	_, err = svc.GetDraft(context.Background(), draft.ID)
	require.ErrorIs(t, err, ErrMalformedDraft)
}

func TestDraftSurvivesCatalogPriceChange(t *testing.T) {
	svc, _, products, _ := newTestService()

	draft, err := svc.CreateDraft(context.Background())
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), draft.ID, QuoteRequest{
		ProductID: 1, WidthCm: 150, HeightCm: 200, Quantity: 1,
	})
	require.NoError(t, err)

	products.products[1].PricePerUnit = 999

	loaded, err := svc.GetDraft(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, 963.00, loaded.Total(), "stored draft keeps the price it was created with")
}

func TestRepricePicksUpNewPrices(t *testing.T) {
	svc, _, products, config := newTestService()

	draft, err := svc.CreateDraft(context.Background())
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), draft.ID, QuoteRequest{
		ProductID: 1, WidthCm: 150, HeightCm: 200, Quantity: 1,
	})
	require.NoError(t, err)

	products.products[1].PricePerUnit = 600
	config.cfg.VATRatePercent = 9

	repriced, err := svc.Reprice(context.Background(), draft.ID)
	require.NoError(t, err)
	require.Len(t, repriced.Items, 1)
	// 1.5m × 600 × 1.2 waste × 1.09 VAT
	assert.Equal(t, 1177.20, repriced.Items[0].Item.Total)
}

func TestRepriceAbortsWhenProductGone(t *testing.T) {
	svc, repo, products, _ := newTestService()

	draft, err := svc.CreateDraft(context.Background())
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), draft.ID, QuoteRequest{
		ProductID: 1, WidthCm: 150, HeightCm: 200, Quantity: 1,
	})
	require.NoError(t, err)

	delete(products.products, 1)

	_, err = svc.Reprice(context.Background(), draft.ID)
	require.Error(t, err)
	require.Len(t, repo.items[draft.ID], 1, "old draft stays intact on failed reprice")
}

func TestPruneStale(t *testing.T) {
	svc, repo, _, _ := newTestService()

	draft, err := svc.CreateDraft(context.Background())
	require.NoError(t, err)
	repo.drafts[draft.ID] = time.Now().UTC().Add(-48 * time.Hour)

	removed, err := svc.PruneStale(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestAddItemOutOfRange(t *testing.T) {
	svc, _, products, _ := newTestService()
	maxW := 400.0
	products.products[1].MaxWidthCm = &maxW

	draft, err := svc.CreateDraft(context.Background())
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), draft.ID, QuoteRequest{
		ProductID: 1, WidthCm: 450, HeightCm: 200, Quantity: 1,
	})
	var rangeErr *pricing.OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "width", rangeErr.Dimension)
	assert.Equal(t, 400.0, rangeErr.BoundCm)
}
