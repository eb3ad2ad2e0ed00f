package product

import (
	"context"
	"errors"
	"fmt"

	"recomart/domain"
	"recomart/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.productRepo.FindAll(ctx)
}

func (s *productService) GetProductByID(ctx context.Context, id uint) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to find product", err)
		}
		return domain.Product{}, err
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.Name == "" {
		return nil, domain.NewValidationError("name", "product name is required")
	}
	if product.Category == "" {
		return nil, domain.NewValidationError("category", "product category is required")
	}
	if product.Price < 0 {
		return nil, domain.NewValidationError("price", "price must not be negative")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created", "product_id", product.ID)

	return product, nil
}

// UpdateProduct changes the catalog entry only. Unit prices already
// snapshotted on order items are untouched.
func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == 0 {
		return nil, domain.NewValidationError("id", "product ID is required")
	}
	if product.Name == "" {
		return nil, domain.NewValidationError("name", "product name is required")
	}
	if product.Category == "" {
		return nil, domain.NewValidationError("category", "product category is required")
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("failed to update product", err)
		}
		return nil, err
	}

	updated, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", err)
		return nil, err
	}

	logger.Info("product updated", "product_id", product.ID)

	return &updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("failed to delete product", err)
		}
		return err
	}

	logger.Info("product deleted", "product_id", id)

	return nil
}
