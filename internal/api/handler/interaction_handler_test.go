package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

type stubInteractionService struct {
	listFn   func(ctx context.Context, f ports.InteractionFilter) (*ports.ListResult[domain.Interaction], error)
	getFn    func(ctx context.Context, id string) (*domain.Interaction, error)
	createFn func(ctx context.Context, actor domain.Principal, in ports.InteractionInput) (*domain.Interaction, error)
	updateFn func(ctx context.Context, actor domain.Principal, id string, in ports.InteractionInput) (*domain.Interaction, error)
	deleteFn func(ctx context.Context, actor domain.Principal, id string) error
}

func (s *stubInteractionService) List(ctx context.Context, f ports.InteractionFilter) (*ports.ListResult[domain.Interaction], error) {
	return s.listFn(ctx, f)
}

func (s *stubInteractionService) Get(ctx context.Context, id string) (*domain.Interaction, error) {
	return s.getFn(ctx, id)
}

func (s *stubInteractionService) Create(ctx context.Context, actor domain.Principal, in ports.InteractionInput) (*domain.Interaction, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubInteractionService) Update(ctx context.Context, actor domain.Principal, id string, in ports.InteractionInput) (*domain.Interaction, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubInteractionService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func TestInteractionHandler_Create(t *testing.T) {
	stub := &stubInteractionService{
		createFn: func(ctx context.Context, actor domain.Principal, in ports.InteractionInput) (*domain.Interaction, error) {
			want := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
			if in.Timestamp == nil || !in.Timestamp.Equal(want) {
				t.Fatalf("unexpected timestamp: %v", in.Timestamp)
			}
			if in.Type != domain.InteractionCall || actor.UserID != testAdmin.UserID {
				t.Fatalf("unexpected input: %+v %+v", in, actor)
			}
			uid := actor.UserID
			return &domain.Interaction{ID: "i-1", Type: in.Type, Timestamp: *in.Timestamp, CustomerID: in.CustomerID, UserID: &uid}, nil
		},
	}

	body := `{"type":"call","notes":"intro","timestamp":"2026-03-09T14:30:00Z","customerId":"` + testCustomerID + `"}`
	c, rec := newContext(http.MethodPost, "/api/interactions", body)
	withPrincipal(c, testAdmin)
	if err := NewInteractionHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	interaction, _ := decodeData(t, rec)["interaction"].(map[string]any)
	if interaction["userId"] != testAdmin.UserID {
		t.Fatalf("unexpected interaction: %v", interaction)
	}
}

func TestInteractionHandler_Create_RejectsUnknownType(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/interactions", `{"type":"fax","customerId":"`+testCustomerID+`"}`)
	withPrincipal(c, testAdmin)
	requireHTTPError(t, NewInteractionHandler(&stubInteractionService{}).Create(c), http.StatusBadRequest,
		"type must be one of: call, email, meeting, note")
}

func TestInteractionHandler_List_Filters(t *testing.T) {
	stub := &stubInteractionService{
		listFn: func(ctx context.Context, f ports.InteractionFilter) (*ports.ListResult[domain.Interaction], error) {
			if f.Type != "meeting" || f.UserID != testAdmin.UserID {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return &ports.ListResult[domain.Interaction]{Items: []*domain.Interaction{}}, nil
		},
	}
	c, _ := newContext(http.MethodGet, "/api/interactions?type=meeting&userId="+testAdmin.UserID, "")
	if err := NewInteractionHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
