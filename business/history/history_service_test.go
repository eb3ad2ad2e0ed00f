package history

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"recomart/domain"
)

type fakeCustomerRepo struct {
	customers map[uint]domain.Customer
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id uint) (domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return domain.Customer{}, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

type fakeOrdersRepo struct {
	orders map[uint][]domain.Order
}

func (f *fakeOrdersRepo) FindByCustomer(_ context.Context, customerID uint, limit int) ([]domain.Order, error) {
	orders := f.orders[customerID]
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
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

func fixtureService() *HistoryService {
	customers := &fakeCustomerRepo{customers: map[uint]domain.Customer{
		1: {ID: 1, Name: "Ana", Email: "ana@example.com"},
		2: {ID: 2, Name: "Ben", Email: "ben@example.com"},
	}}
	products := &fakeProductRepo{products: map[uint]domain.Product{
		10: {ID: 10, Name: "Go Primer", Category: "Books", Price: 25},
		20: {ID: 20, Name: "Headphones", Category: "Electronics", Price: 80},
		30: {ID: 30, Name: "Trowel", Category: "Gardening", Price: 12},
	}}

	// most recent first, as the repository returns them
	orders := &fakeOrdersRepo{orders: map[uint][]domain.Order{
		1: {
			{ID: 102, CustomerID: 1, Items: []domain.OrderItem{
				{ProductID: 20, Quantity: 1, UnitPrice: 80},
			}},
			{ID: 101, CustomerID: 1, Items: []domain.OrderItem{
				{ProductID: 10, Quantity: 2, UnitPrice: 25},
			}},
		},
	}}

	return NewHistoryService(customers, orders, products, 0)
}

func TestSummarize_WeightsAndTotals(t *testing.T) {
	svc := fixtureService()

	summary, err := svc.Summarize(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	if summary.TotalOrders != 2 {
		t.Fatalf("want 2 orders, got %d", summary.TotalOrders)
	}
	if summary.TotalSpent != 2*25+80 {
		t.Fatalf("want total spent 130, got %.2f", summary.TotalSpent)
	}

	// newest order (Electronics, qty 1) weight 2 => score 2
	// oldest order (Books, qty 2) weight 1 => score 2
	// tie broken by category name ascending: Books first
	if len(summary.Categories) != 2 {
		t.Fatalf("want 2 categories, got %+v", summary.Categories)
	}
	if summary.Categories[0].Category != "Books" || summary.Categories[1].Category != "Electronics" {
		t.Fatalf("unexpected category order: %+v", summary.Categories)
	}
	if summary.Categories[0].Frequency != 2 || summary.Categories[1].Frequency != 1 {
		t.Fatalf("unexpected frequencies: %+v", summary.Categories)
	}

	// purchased ids feed the recommendation exclusion
	if !reflect.DeepEqual(summary.ProductIDs, []uint{20, 10}) {
		t.Fatalf("unexpected purchased ids: %v", summary.ProductIDs)
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	svc := fixtureService()

	first, err := svc.Summarize(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Summarize(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("summaries differ across calls:\n%+v\n%+v", first, second)
	}
}

func TestSummarize_NoHistory(t *testing.T) {
	svc := fixtureService()

	summary, err := svc.Summarize(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}

	if summary.TotalOrders != 0 || len(summary.Categories) != 0 {
		t.Fatalf("want empty summary, got %+v", summary)
	}
}

func TestSummarize_UnknownCustomer(t *testing.T) {
	svc := fixtureService()

	_, err := svc.Summarize(context.Background(), 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSummarize_RecencyBeatsVolume(t *testing.T) {
	customers := &fakeCustomerRepo{customers: map[uint]domain.Customer{1: {ID: 1}}}
	products := &fakeProductRepo{products: map[uint]domain.Product{
		10: {ID: 10, Category: "Books"},
		20: {ID: 20, Category: "Electronics"},
	}}
	// three orders: two recent Electronics singles outweigh one old
	// Books single despite equal frequency totals being close
	orders := &fakeOrdersRepo{orders: map[uint][]domain.Order{
		1: {
			{ID: 3, Items: []domain.OrderItem{{ProductID: 20, Quantity: 1}}},
			{ID: 2, Items: []domain.OrderItem{{ProductID: 20, Quantity: 1}}},
			{ID: 1, Items: []domain.OrderItem{{ProductID: 10, Quantity: 2}}},
		},
	}}

	svc := NewHistoryService(customers, orders, products, 0)

	summary, err := svc.Summarize(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	// Electronics: 1*3 + 1*2 = 5, Books: 2*1 = 2
	if summary.Categories[0].Category != "Electronics" {
		t.Fatalf("want Electronics ranked first, got %+v", summary.Categories)
	}
	if summary.Categories[0].Score <= summary.Categories[1].Score {
		t.Fatalf("scores not ordered: %+v", summary.Categories)
	}
}
