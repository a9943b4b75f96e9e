package handler

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

type stubCustomerService struct {
	listFn   func(ctx context.Context, f ports.CustomerFilter) (*ports.ListResult[domain.Customer], error)
	getFn    func(ctx context.Context, id string) (*domain.Customer, error)
	createFn func(ctx context.Context, actor domain.Principal, in ports.CustomerInput) (*domain.Customer, error)
	updateFn func(ctx context.Context, actor domain.Principal, id string, in ports.CustomerInput) (*domain.Customer, error)
	deleteFn func(ctx context.Context, actor domain.Principal, id string) error
}

func (s *stubCustomerService) List(ctx context.Context, f ports.CustomerFilter) (*ports.ListResult[domain.Customer], error) {
	return s.listFn(ctx, f)
}

func (s *stubCustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.getFn(ctx, id)
}

func (s *stubCustomerService) Create(ctx context.Context, actor domain.Principal, in ports.CustomerInput) (*domain.Customer, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubCustomerService) Update(ctx context.Context, actor domain.Principal, id string, in ports.CustomerInput) (*domain.Customer, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubCustomerService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func TestCustomerHandler_List_ParsesQuery(t *testing.T) {
	stub := &stubCustomerService{
		listFn: func(ctx context.Context, f ports.CustomerFilter) (*ports.ListResult[domain.Customer], error) {
			if f.Search != "acme" || f.Page != 2 || f.Limit != 5 {
				t.Fatalf("unexpected filter: %+v", f)
			}
			if !reflect.DeepEqual(f.Tags, []string{"vip", "retail"}) {
				t.Fatalf("unexpected tags: %#v", f.Tags)
			}
			return &ports.ListResult[domain.Customer]{
				Items:      []*domain.Customer{{ID: "c-1", Name: "Acme", Tags: []string{"vip"}}},
				Pagination: domain.Pagination{Page: 2, Limit: 5, Total: 6, Pages: 2},
			}, nil
		},
	}

	c, rec := newContext(http.MethodGet, "/api/customers?search=+acme+&tags=vip,%20retail,,&page=2&limit=5", "")
	if err := NewCustomerHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	data := decodeData(t, rec)
	customers, ok := data["customers"].([]any)
	if !ok || len(customers) != 1 {
		t.Fatalf("unexpected customers: %v", data["customers"])
	}
	pagination, _ := data["pagination"].(map[string]any)
	if pagination["pages"] != float64(2) || pagination["total"] != float64(6) {
		t.Fatalf("unexpected pagination: %v", pagination)
	}
}

func TestCustomerHandler_List_RejectsBadPaging(t *testing.T) {
	cases := map[string]string{
		"/api/customers?limit=500": "limit must be at most 100",
		"/api/customers?page=-1":   "page must be at least 1",
		"/api/customers?page=abc":  "invalid query parameters",
	}
	for target, msg := range cases {
		stub := &stubCustomerService{}
		c, _ := newContext(http.MethodGet, target, "")
		requireHTTPError(t, NewCustomerHandler(stub).List(c), http.StatusBadRequest, msg)
	}
}

func TestCustomerHandler_Create(t *testing.T) {
	stub := &stubCustomerService{
		createFn: func(ctx context.Context, actor domain.Principal, in ports.CustomerInput) (*domain.Customer, error) {
			if actor.UserID != testAdmin.UserID {
				t.Fatalf("actor not forwarded: %+v", actor)
			}
			if !reflect.DeepEqual(in.Tags, []string{"vip", "vip"}) {
				t.Fatalf("tags must keep duplicates: %v", in.Tags)
			}
			return &domain.Customer{ID: "c-1", Name: in.Name, Tags: in.Tags}, nil
		},
	}

	c, rec := newContext(http.MethodPost, "/api/customers", `{"name":"Acme","email":"ops@acme.test","tags":["vip","vip"]}`)
	withPrincipal(c, testAdmin)
	if err := NewCustomerHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	customer, _ := decodeData(t, rec)["customer"].(map[string]any)
	if customer["id"] != "c-1" {
		t.Fatalf("unexpected customer: %v", customer)
	}
}

func TestCustomerHandler_Create_RequiresName(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/customers", `{"email":"ops@acme.test"}`)
	withPrincipal(c, testAdmin)
	requireHTTPError(t, NewCustomerHandler(&stubCustomerService{}).Create(c), http.StatusBadRequest, "name is required")
}

func TestCustomerHandler_GetAndDelete(t *testing.T) {
	stub := &stubCustomerService{
		getFn: func(ctx context.Context, id string) (*domain.Customer, error) {
			return nil, domain.ErrCustomerNotFound
		},
		deleteFn: func(ctx context.Context, actor domain.Principal, id string) error {
			if id != "c-9" {
				t.Fatalf("unexpected id %q", id)
			}
			return nil
		},
	}
	h := NewCustomerHandler(stub)

	c, _ := newContext(http.MethodGet, "/api/customers/c-1", "")
	if err := h.Get(withID(c, "c-1")); err != domain.ErrCustomerNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	c, rec := newContext(http.MethodDelete, "/api/customers/c-9", "")
	withPrincipal(withID(c, "c-9"), testAdmin)
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
