package orders

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"recomart/domain"
)

type fakeOrdersRepo struct {
	created []domain.Order
	nextID  uint
}

func (f *fakeOrdersRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	f.nextID++
	order.ID = f.nextID
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	f.created = append(f.created, *order)
	return nil
}

func (f *fakeOrdersRepo) FindByID(_ context.Context, id uint) (domain.Order, error) {
	for _, o := range f.created {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
}

func (f *fakeOrdersRepo) FindByCustomer(_ context.Context, customerID uint, _ int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.created {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrdersRepo) DeleteOrder(_ context.Context, id uint) error {
	for i, o := range f.created {
		if o.ID == id {
			f.created = append(f.created[:i], f.created[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
}

type fakeCustomerRepo struct {
	ids map[uint]bool
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id uint) (domain.Customer, error) {
	if !f.ids[id] {
		return domain.Customer{}, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}
	return domain.Customer{ID: id}, nil
}

type fakeProductRepo struct {
	products map[uint]domain.Product
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []uint) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func fixture() (*OrdersService, *fakeOrdersRepo) {
	ordersRepo := &fakeOrdersRepo{}
	customers := &fakeCustomerRepo{ids: map[uint]bool{1: true}}
	products := &fakeProductRepo{products: map[uint]domain.Product{
		10: {ID: 10, Name: "Go Primer", Category: "Books", Price: 25},
		20: {ID: 20, Name: "Headphones", Category: "Electronics", Price: 80},
	}}
	return NewOrdersService(ordersRepo, customers, products), ordersRepo
}

func TestCreateOrder_SnapshotsUnitPrice(t *testing.T) {
	svc, repo := fixture()

	order, err := svc.CreateOrder(context.Background(), 1, []ItemInput{
		{ProductID: 10, Quantity: 2},
		{ProductID: 20, Quantity: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(order.Items) != 2 {
		t.Fatalf("want 2 items, got %+v", order.Items)
	}
	if order.Items[0].UnitPrice != 25 || order.Items[1].UnitPrice != 80 {
		t.Fatalf("unit prices not snapshotted: %+v", order.Items)
	}
	if order.Status != domain.OrderStatusPending {
		t.Fatalf("want PENDING, got %s", order.Status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("want 1 persisted order, got %d", len(repo.created))
	}
}

func TestCreateOrder_RoundTrip(t *testing.T) {
	svc, _ := fixture()

	created, err := svc.CreateOrder(context.Background(), 1, []ItemInput{
		{ProductID: 10, Quantity: 3},
	})
	if err != nil {
		t.Fatal(err)
	}

	fetched, err := svc.GetOrder(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}

	if fetched.CustomerID != created.CustomerID {
		t.Fatalf("customer id mismatch: %d vs %d", fetched.CustomerID, created.CustomerID)
	}
	if len(fetched.Items) != 1 || fetched.Items[0].ProductID != 10 || fetched.Items[0].Quantity != 3 {
		t.Fatalf("item set mismatch: %+v", fetched.Items)
	}
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	svc, repo := fixture()

	_, err := svc.CreateOrder(context.Background(), 1, nil)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("nothing should persist, got %+v", repo.created)
	}
}

func TestCreateOrder_NonPositiveQuantity(t *testing.T) {
	svc, repo := fixture()

	_, err := svc.CreateOrder(context.Background(), 1, []ItemInput{
		{ProductID: 10, Quantity: 0},
	})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("nothing should persist, got %+v", repo.created)
	}
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	svc, repo := fixture()

	_, err := svc.CreateOrder(context.Background(), 42, []ItemInput{
		{ProductID: 10, Quantity: 1},
	})

	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("nothing should persist, got %+v", repo.created)
	}
}

func TestCreateOrder_UnknownProductPersistsNothing(t *testing.T) {
	svc, repo := fixture()

	// second item references a missing product: the whole order is rejected
	_, err := svc.CreateOrder(context.Background(), 1, []ItemInput{
		{ProductID: 10, Quantity: 1},
		{ProductID: 999, Quantity: 1},
	})

	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("partial order persisted: %+v", repo.created)
	}
}
