package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"recomart/domain"
)

type fakeCustomerService struct {
	created domain.Customer
	err     error
}

func (f *fakeCustomerService) CreateCustomer(ctx context.Context, customer *domain.Customer) (domain.Customer, error) {
	if f.err != nil {
		return domain.Customer{}, f.err
	}
	f.created = *customer
	f.created.ID = 1
	return f.created, nil
}

func (f *fakeCustomerService) GetCustomerByID(ctx context.Context, id uint) (domain.Customer, error) {
	return f.created, f.err
}

func (f *fakeCustomerService) GetCustomerHistory(ctx context.Context, id uint) ([]domain.Order, error) {
	return nil, f.err
}

func (f *fakeCustomerService) GetAllCustomers(ctx context.Context) ([]domain.Customer, error) {
	return nil, f.err
}

func (f *fakeCustomerService) DeleteCustomer(ctx context.Context, id uint) error {
	return f.err
}

func newCustomerPost(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateCustomer_Created(t *testing.T) {
	service := &fakeCustomerService{}
	handler := NewCustomerHandler(service)

	c, rec := newCustomerPost(`{"name":"Ana","email":"ana@example.com"}`)
	if err := handler.CreateCustomer(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if service.created.Email != "ana@example.com" {
		t.Fatalf("service got email %q", service.created.Email)
	}
}

func TestCreateCustomer_InvalidEmail(t *testing.T) {
	handler := NewCustomerHandler(&fakeCustomerService{})

	c, rec := newCustomerPost(`{"name":"Ana","email":"not-an-email"}`)
	if err := handler.CreateCustomer(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateCustomer_MissingName(t *testing.T) {
	handler := NewCustomerHandler(&fakeCustomerService{})

	c, rec := newCustomerPost(`{"email":"ana@example.com"}`)
	if err := handler.CreateCustomer(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetCustomerHistory_UnknownCustomer(t *testing.T) {
	service := &fakeCustomerService{
		err: fmt.Errorf("customer 42: %w", domain.ErrNotFound),
	}
	handler := NewCustomerHandler(service)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/customers/42/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/customers/:id/history")
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.GetCustomerHistory(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	service := &fakeCustomerService{
		err: domain.NewValidationError("email", "already registered"),
	}
	handler := NewCustomerHandler(service)

	c, rec := newCustomerPost(`{"name":"Ana","email":"ana@example.com"}`)
	if err := handler.CreateCustomer(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "email") {
		t.Fatalf("response should name the offending field: %s", rec.Body.String())
	}
}
