package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidModel = errors.New("invalid pricing model")

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		return nil, errors.New("invalid product ID")
	}
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.repo.GetProductBySlug(ctx, slug)
}

func (s *Service) ListProducts(ctx context.Context, req ListProductsRequest) ([]Product, int, error) {
	return s.repo.ListProducts(ctx, req)
}

func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if err := validatePricingShape(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, fmt.Errorf("verify category: %w", err)
	}

	p := Product{
		SKU:                 req.SKU,
		Name:                req.Name,
		Slug:                req.Slug,
		BrandID:             req.BrandID,
		CategoryID:          req.CategoryID,
		Unit:                req.Unit,
		Method:              req.Method,
		PricePerUnit:        req.PricePerUnit,
		Tiers:               req.Tiers,
		MinWidthCm:          req.MinWidthCm,
		MaxWidthCm:          req.MaxWidthCm,
		MaxHeightCm:         req.MaxHeightCm,
		MinBillableWidthCm:  req.MinBillableWidthCm,
		MinBillableHeightCm: req.MinBillableHeightCm,
		WidthStepCm:         req.WidthStepCm,
		HeightStepCm:        req.HeightStepCm,
		MinAreaM2:           req.MinAreaM2,
		AreaFactor:          req.AreaFactor,
		AreaRoundingM2:      req.AreaRoundingM2,
		CoveragePerUnitM2:   req.CoveragePerUnitM2,
		RollWidthCm:         req.RollWidthCm,
		RollLengthCm:        req.RollLengthCm,
		IsActive:            true,
	}
	id, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetProduct(ctx, id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.PricePerUnit != nil {
		updates["price_per_unit"] = *req.PricePerUnit
	}
	if req.Tiers != nil {
		if err := validateTiers(*req.Tiers); err != nil {
			return nil, err
		}
		updates["tiers"] = *req.Tiers
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := s.repo.UpdateProduct(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) ListBrands(ctx context.Context) ([]Brand, error) {
	return s.repo.ListBrands(ctx)
}
