package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drapehaus/drapehaus/internal/pricing"
)

type mockRepository struct {
	products   map[int64]*Product
	categories map[int64]Category
	nextID     int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		products:   make(map[int64]*Product),
		categories: map[int64]Category{1: {ID: 1, Code: "wallpaper", Name: "Wallpaper"}},
		nextID:     1,
	}
}

func (m *mockRepository) GetProduct(ctx context.Context, id int64) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockRepository) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepository) ListProducts(ctx context.Context, req ListProductsRequest) ([]Product, int, error) {
	var out []Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *mockRepository) CreateProduct(ctx context.Context, p Product) (int64, error) {
	id := m.nextID
	m.nextID++
	p.ID = id
	p.CategoryCode = m.categories[p.CategoryID].Code
	m.products[id] = &p
	return id, nil
}

func (m *mockRepository) UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error {
	p, ok := m.products[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := updates["price_per_unit"]; ok {
		p.PricePerUnit = v.(float64)
	}
	if v, ok := updates["is_active"]; ok {
		p.IsActive = v.(bool)
	}
	return nil
}

func (m *mockRepository) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockRepository) GetCategory(ctx context.Context, id int64) (Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}

func (m *mockRepository) ListBrands(ctx context.Context) ([]Brand, error) {
	return nil, nil
}

func validCreateRequest() CreateProductRequest {
	coverage := 5.0
	return CreateProductRequest{
		SKU:               "WP-001",
		Name:              "Forest Mural",
		Slug:              "forest-mural",
		CategoryID:        1,
		Unit:              pricing.UnitRoll,
		Method:            pricing.MethodRollCoverage,
		PricePerUnit:      1200,
		CoveragePerUnitM2: &coverage,
	}
}

func TestCreateProduct(t *testing.T) {
	svc := NewService(newMockRepository())

	product, err := svc.CreateProduct(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "wallpaper", product.CategoryCode)
	assert.True(t, product.IsActive)

	model := product.PricingModel()
	assert.Equal(t, pricing.MethodRollCoverage, model.Method)
	assert.Equal(t, "wallpaper", model.Category)
	require.NotNil(t, model.CoveragePerUnitM2)
	assert.Equal(t, 5.0, *model.CoveragePerUnitM2)
}

func TestCreateProductRejectsShapeMismatch(t *testing.T) {
	svc := NewService(newMockRepository())

	req := validCreateRequest()
	req.CoveragePerUnitM2 = nil
	_, err := svc.CreateProduct(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidModel)

	req = validCreateRequest()
	req.Method = pricing.MethodSteppedTable
	req.Unit = pricing.UnitSquareMeter
	_, err = svc.CreateProduct(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidModel, "stepped_table without a table must fail")

	req.Tiers = []pricing.PriceTier{{Threshold: 5, Price: 900}, {Threshold: 5, Price: 800}}
	_, err = svc.CreateProduct(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidModel, "non-increasing thresholds must fail")
}

func TestCreateProductUnknownCategory(t *testing.T) {
	svc := NewService(newMockRepository())

	req := validCreateRequest()
	req.CategoryID = 99
	_, err := svc.CreateProduct(context.Background(), req)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProduct(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	created, err := svc.CreateProduct(context.Background(), validCreateRequest())
	require.NoError(t, err)

	name := "Forest Mural XL"
	price := 1350.0
	updated, err := svc.UpdateProduct(context.Background(), created.ID, UpdateProductRequest{
		Name:         &name,
		PricePerUnit: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, price, updated.PricePerUnit)
}
