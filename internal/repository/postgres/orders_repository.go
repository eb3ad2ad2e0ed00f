package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"recomart/domain"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// CreateOrder persists the order and all of its items in one transaction.
// A failure on any item rolls back the whole order; no partial orders.
func (r *OrdersRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.Order

	err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

// FindByCustomer returns the customer's orders most recent first, items
// preloaded. limit <= 0 means no limit.
func (r *OrdersRepository) FindByCustomer(ctx context.Context, customerID uint, limit int) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var orders []domain.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

// GlobalPopularity counts order items per product across the whole store,
// most popular first, ties broken by product id for stable output.
func (r *OrdersRepository) GlobalPopularity(ctx context.Context) ([]domain.ProductPopularity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ProductPopularity
	err := r.DB.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Select("product_id, COUNT(*) AS orders").
		Group("product_id").
		Order("orders DESC, product_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate popularity: %w", err)
	}

	return rows, nil
}

// SimilarCustomerProducts aggregates what customers with overlapping taste
// bought: peers are customers other than customerID with at least one
// purchase in the given categories, and the result counts their purchases
// per product, skipping products in exclude. Most purchased first, then
// most distinct buyers, then product id for stable output.
func (r *OrdersRepository) SimilarCustomerProducts(ctx context.Context, customerID uint, categories []string, exclude []uint, limit int) ([]domain.SimilarProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(categories) == 0 {
		return nil, nil
	}

	peers := r.DB.Model(&domain.Order{}).
		Distinct("orders.customer_id").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.customer_id <> ?", customerID).
		Where("products.category IN ?", categories)

	query := r.DB.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Select("order_items.product_id, COUNT(*) AS purchases, COUNT(DISTINCT orders.customer_id) AS buyers").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id IN (?)", peers).
		Group("order_items.product_id").
		Order("purchases DESC, buyers DESC, product_id ASC")

	if len(exclude) > 0 {
		query = query.Where("order_items.product_id NOT IN ?", exclude)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []domain.SimilarProduct
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate similar customers: %w", err)
	}

	return rows, nil
}

func (r *OrdersRepository) DeleteOrder(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Order{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
