package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"recomart/domain"
	"recomart/pkg/logger"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) (domain.Customer, error)
	GetCustomerByID(ctx context.Context, id uint) (domain.Customer, error)
	GetCustomerHistory(ctx context.Context, id uint) ([]domain.Order, error)
	GetAllCustomers(ctx context.Context) ([]domain.Customer, error)
	DeleteCustomer(ctx context.Context, id uint) error
}

type CustomerHandler struct {
	customerService CustomerService
	validate        *validator.Validate
	timeout         time.Duration
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		validate:        validator.New(),
		timeout:         10 * time.Second,
	}
}

type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var request CreateCustomerRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed customer validation", err)
		return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	customer, err := h.customerService.CreateCustomer(ctx, &domain.Customer{
		Name:  request.Name,
		Email: request.Email,
	})
	if err != nil {
		logger.Error("Failed to create customer", err)
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(customer))
}

func (h *CustomerHandler) GetCustomerHistory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid customer id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orders, err := h.customerService.GetCustomerHistory(ctx, uint(id))
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

func (h *CustomerHandler) GetCustomerByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid customer id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	customer, err := h.customerService.GetCustomerByID(ctx, uint(id))
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(customer))
}

func (h *CustomerHandler) GetAllCustomers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	customers, err := h.customerService.GetAllCustomers(ctx)
	if err != nil {
		logger.Error("Failed to get all customers", err)
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(customers))
}

func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid customer id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.customerService.DeleteCustomer(ctx, uint(id)); err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Customer deleted successfully"))
}
