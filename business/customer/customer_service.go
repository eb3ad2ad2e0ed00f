package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"recomart/domain"
	"recomart/pkg/logger"
)

// CustomerRepository contract interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindByID(ctx context.Context, id uint) (domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (domain.Customer, error)
	FindAll(ctx context.Context) ([]domain.Customer, error)
	Delete(ctx context.Context, id uint) error
}

// OrdersRepository contract interface
type OrdersRepository interface {
	FindByCustomer(ctx context.Context, customerID uint, limit int) ([]domain.Order, error)
}

type customerService struct {
	customerRepo CustomerRepository
	ordersRepo   OrdersRepository
	validate     *validator.Validate
}

func NewCustomerService(
	customerRepo CustomerRepository,
	ordersRepo OrdersRepository,
	validate *validator.Validate,
) *customerService {
	return &customerService{
		customerRepo: customerRepo,
		ordersRepo:   ordersRepo,
		validate:     validate,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *domain.Customer) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Var(customer.Name, "required,min=1,max=100"); err != nil {
		logger.Error("Invalid customer name", err)
		return domain.Customer{}, domain.NewValidationError("name", "name is required")
	}

	if err := s.validate.Var(customer.Email, "required,email"); err != nil {
		logger.Error("Invalid customer email", err)
		return domain.Customer{}, domain.NewValidationError("email", "invalid email format")
	}

	// Check if email already exists
	existing, err := s.customerRepo.FindByEmail(ctx, customer.Email)
	if err == nil && existing.ID > 0 {
		logger.Error("Email already registered", "email", customer.Email)
		return domain.Customer{}, domain.NewValidationError("email", "email already registered")
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		logger.Error("Failed to create customer", err)
		return domain.Customer{}, err
	}

	logger.Info("customer created", "customer_id", customer.ID)

	return *customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, id uint) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to find customer", err)
		}
		return domain.Customer{}, err
	}

	return customer, nil
}

// GetCustomerHistory returns the customer's past orders most recent first,
// items included. The ordering is stable across calls without intervening
// writes.
func (s *customerService) GetCustomerHistory(ctx context.Context, id uint) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	orders, err := s.ordersRepo.FindByCustomer(ctx, id, 0)
	if err != nil {
		logger.Error("Failed to load customer history", err)
		return nil, err
	}

	return orders, nil
}

func (s *customerService) GetAllCustomers(ctx context.Context) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.customerRepo.FindAll(ctx)
}

func (s *customerService) DeleteCustomer(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to delete customer", err)
		}
		return err
	}

	logger.Info("customer deleted", "customer_id", id)

	return nil
}
