package history

import (
	"context"
	"fmt"
	"sort"

	"recomart/domain"
	"recomart/pkg/logger"
)

// CustomerRepository contract interface
type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Customer, error)
}

// OrdersRepository contract interface
type OrdersRepository interface {
	FindByCustomer(ctx context.Context, customerID uint, limit int) ([]domain.Order, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error)
}

type HistoryService struct {
	customerRepo CustomerRepository
	ordersRepo   OrdersRepository
	productRepo  ProductRepository
	lookback     int
}

// NewHistoryService builds the aggregator. lookback bounds how many recent
// orders enter the summary; 0 means all of them.
func NewHistoryService(
	customerRepo CustomerRepository,
	ordersRepo OrdersRepository,
	productRepo ProductRepository,
	lookback int,
) *HistoryService {
	return &HistoryService{
		customerRepo: customerRepo,
		ordersRepo:   ordersRepo,
		productRepo:  productRepo,
		lookback:     lookback,
	}
}

// Summarize flattens the customer's orders into per-category stats. Recent
// orders weigh more: with N orders the newest gets weight N, the oldest 1.
// Output is deterministic for a fixed database state; ties are broken by
// category name ascending.
func (s *HistoryService) Summarize(ctx context.Context, customerID uint) (domain.PurchaseSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.PurchaseSummary{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return domain.PurchaseSummary{}, err
	}

	orders, err := s.ordersRepo.FindByCustomer(ctx, customerID, s.lookback)
	if err != nil {
		logger.Error("Failed to load orders for summary", err)
		return domain.PurchaseSummary{}, err
	}

	summary := domain.PurchaseSummary{
		CustomerID:  customerID,
		TotalOrders: len(orders),
		Categories:  []domain.CategoryStat{},
	}

	if len(orders) == 0 {
		return summary, nil
	}

	productIDs := make([]uint, 0)
	seen := make(map[uint]bool)
	for _, order := range orders {
		for _, item := range order.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}

	summary.ProductIDs = productIDs

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		logger.Error("Failed to load products for summary", err)
		return domain.PurchaseSummary{}, err
	}

	categoryByID := make(map[uint]string, len(products))
	for _, p := range products {
		categoryByID[p.ID] = p.Category
	}

	frequency := make(map[string]int)
	score := make(map[string]float64)

	// orders arrive most recent first
	n := len(orders)
	for i, order := range orders {
		weight := float64(n - i)
		for _, item := range order.Items {
			category, ok := categoryByID[item.ProductID]
			if !ok {
				// product vanished from the catalog, skip the line
				continue
			}

			frequency[category] += item.Quantity
			score[category] += weight * float64(item.Quantity)
			summary.TotalSpent += item.UnitPrice * float64(item.Quantity)
		}
	}

	for category, freq := range frequency {
		summary.Categories = append(summary.Categories, domain.CategoryStat{
			Category:  category,
			Frequency: freq,
			Score:     score[category],
		})
	}

	sort.Slice(summary.Categories, func(i, j int) bool {
		if summary.Categories[i].Score != summary.Categories[j].Score {
			return summary.Categories[i].Score > summary.Categories[j].Score
		}
		return summary.Categories[i].Category < summary.Categories[j].Category
	})

	return summary, nil
}
