package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recomart/domain"
	"recomart/pkg/logger"
)

// OrdersRepository contract interface
type OrdersRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindByCustomer(ctx context.Context, customerID uint, limit int) ([]domain.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
}

// CustomerRepository contract interface
type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Customer, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error)
}

// ItemInput is one requested line of a new order.
type ItemInput struct {
	ProductID uint
	Quantity  int
}

type OrdersService struct {
	ordersRepo   OrdersRepository
	customerRepo CustomerRepository
	productsRepo ProductRepository
}

func NewOrdersService(
	ordersRepo OrdersRepository,
	customerRepo CustomerRepository,
	productsRepo ProductRepository,
) *OrdersService {
	return &OrdersService{
		ordersRepo:   ordersRepo,
		customerRepo: customerRepo,
		productsRepo: productsRepo,
	}
}

// CreateOrder validates the request, snapshots unit prices from the current
// catalog and persists order plus items atomically. Either every item lands
// or none do.
func (s *OrdersService) CreateOrder(ctx context.Context, customerID uint, items []ItemInput) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	if len(items) == 0 {
		return domain.Order{}, domain.NewValidationError("items", "order needs at least one item")
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return domain.Order{}, domain.NewValidationError("quantity", "quantity must be positive")
		}
	}

	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return domain.Order{}, err
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productsRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to load products for order", err)
		return domain.Order{}, err
	}

	priceByID := make(map[uint]float64, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
	}

	order := domain.Order{
		CustomerID: customerID,
		Status:     domain.OrderStatusPending,
		CreatedAt:  time.Now(),
		Items:      make([]domain.OrderItem, 0, len(items)),
	}

	for _, item := range items {
		price, ok := priceByID[item.ProductID]
		if !ok {
			return domain.Order{}, fmt.Errorf("product %d: %w", item.ProductID, domain.ErrNotFound)
		}

		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
	}

	if err := s.ordersRepo.CreateOrder(ctx, &order); err != nil {
		logger.Error("Failed to create order", err)
		return domain.Order{}, err
	}

	logger.Info("order created", "order_id", order.ID, "customer_id", customerID, "items", len(order.Items))

	return order, nil
}

func (s *OrdersService) GetOrder(ctx context.Context, id uint) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	order, err := s.ordersRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to find order", err)
		}
		return domain.Order{}, err
	}

	return order, nil
}

func (s *OrdersService) GetOrdersByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.ordersRepo.FindByCustomer(ctx, customerID, 0)
}

func (s *OrdersService) DeleteOrder(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return s.ordersRepo.DeleteOrder(ctx, id)
}
