package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drapehaus/drapehaus/internal/pricing"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	ListProducts(ctx context.Context, req ListProductsRequest) ([]Product, int, error)
	CreateProduct(ctx context.Context, p Product) (int64, error)
	UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (Category, error)
	ListBrands(ctx context.Context) ([]Brand, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `p.id, p.sku, p.name, p.slug, p.brand_id, p.category_id, c.code,
	p.unit, p.method, p.price_per_unit, p.tiers,
	p.min_width_cm, p.max_width_cm, p.max_height_cm,
	p.min_billable_width_cm, p.min_billable_height_cm,
	p.width_step_cm, p.height_step_cm,
	p.min_area_m2, p.area_factor, p.area_rounding_m2,
	p.coverage_per_unit_m2, p.roll_width_cm, p.roll_length_cm,
	p.is_active, p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	var tiersJSON []byte
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Slug, &p.BrandID, &p.CategoryID, &p.CategoryCode,
		&p.Unit, &p.Method, &p.PricePerUnit, &tiersJSON,
		&p.MinWidthCm, &p.MaxWidthCm, &p.MaxHeightCm,
		&p.MinBillableWidthCm, &p.MinBillableHeightCm,
		&p.WidthStepCm, &p.HeightStepCm,
		&p.MinAreaM2, &p.AreaFactor, &p.AreaRoundingM2,
		&p.CoveragePerUnitM2, &p.RollWidthCm, &p.RollLengthCm,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(tiersJSON) > 0 {
		var tiers []pricing.PriceTier
		if err := json.Unmarshal(tiersJSON, &tiers); err != nil {
			return nil, fmt.Errorf("decode price tiers for product %d: %w", p.ID, err)
		}
		p.Tiers = tiers
	}
	return &p, nil
}

func (r *repository) GetProduct(ctx context.Context, id int64) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p JOIN categories c ON c.id = p.category_id WHERE p.id = $1`
	return scanProduct(r.pool.QueryRow(ctx, query, id))
}

func (r *repository) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p JOIN categories c ON c.id = p.category_id WHERE p.slug = $1`
	return scanProduct(r.pool.QueryRow(ctx, query, slug))
}

// ListProducts uses a dynamic query due to filter complexity.
func (r *repository) ListProducts(ctx context.Context, req ListProductsRequest) ([]Product, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if req.CategoryID != nil {
		argCount++
		where += ` AND p.category_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.CategoryID)
	}
	if req.BrandID != nil {
		argCount++
		where += ` AND p.brand_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.BrandID)
	}
	if req.Search != "" {
		argCount++
		where += ` AND (p.name ILIKE $` + strconv.Itoa(argCount) + ` OR p.sku ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+req.Search+"%")
	}
	if req.ActiveOnly {
		where += ` AND p.is_active`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products p` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products p JOIN categories c ON c.id = p.category_id` + where + ` ORDER BY p.name ASC`
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, perPage)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *repository) CreateProduct(ctx context.Context, p Product) (int64, error) {
	tiersJSON, err := json.Marshal(p.Tiers)
	if err != nil {
		return 0, fmt.Errorf("encode price tiers: %w", err)
	}
	now := time.Now()

	var id int64
	err = r.pool.QueryRow(ctx, `
		INSERT INTO products (
			sku, name, slug, brand_id, category_id, unit, method, price_per_unit, tiers,
			min_width_cm, max_width_cm, max_height_cm,
			min_billable_width_cm, min_billable_height_cm,
			width_step_cm, height_step_cm,
			min_area_m2, area_factor, area_rounding_m2,
			coverage_per_unit_m2, roll_width_cm, roll_length_cm,
			is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22,
			$23, $24, $25
		) RETURNING id`,
		p.SKU, p.Name, p.Slug, p.BrandID, p.CategoryID, p.Unit, p.Method, p.PricePerUnit, tiersJSON,
		p.MinWidthCm, p.MaxWidthCm, p.MaxHeightCm,
		p.MinBillableWidthCm, p.MinBillableHeightCm,
		p.WidthStepCm, p.HeightStepCm,
		p.MinAreaM2, p.AreaFactor, p.AreaRoundingM2,
		p.CoveragePerUnitM2, p.RollWidthCm, p.RollLengthCm,
		p.IsActive, now, now,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	query := `UPDATE products SET updated_at = NOW()`
	args := []interface{}{}
	argCount := 0
	for _, col := range []string{"name", "price_per_unit", "tiers", "is_active"} {
		v, ok := updates[col]
		if !ok {
			continue
		}
		if col == "tiers" {
			encoded, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encode price tiers: %w", err)
			}
			v = encoded
		}
		argCount++
		query += `, ` + col + ` = $` + strconv.Itoa(argCount)
		args = append(args, v)
	}
	argCount++
	query += ` WHERE id = $` + strconv.Itoa(argCount)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, code, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *repository) GetCategory(ctx context.Context, id int64) (Category, error) {
	var c Category
	err := r.pool.QueryRow(ctx, `SELECT id, code, name FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Code, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	return c, err
}

func (r *repository) ListBrands(ctx context.Context) ([]Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM brands ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []Brand
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}
