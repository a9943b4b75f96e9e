package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	authenticateFn   func(ctx context.Context, token string) (*domain.Principal, error)
	meFn             func(ctx context.Context, userID string) (*domain.User, error)
	changePasswordFn func(ctx context.Context, userID, current, next string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	return s.authenticateFn(ctx, token)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return s.changePasswordFn(ctx, userID, current, next)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Role != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				Token: "token123",
				User:  &domain.User{ID: "u-1", Name: in.Name, Email: in.Email, Role: domain.RoleUser, PasswordHash: "hash"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/auth/register", `{"name":"Alice","email":"alice@example.com","password":"secret1"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	data := decodeData(t, rec)
	if data["token"] != "token123" {
		t.Fatalf("expected token, got %v", data["token"])
	}
	user, ok := data["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "alice@example.com" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"invalid json", "not-json", "invalid request body"},
		{"missing name", `{"email":"a@example.com","password":"secret1"}`, "name is required"},
		{"bad email", `{"name":"Al","email":"nope","password":"secret1"}`, "email must be a valid email"},
		{"short password", `{"name":"Al","email":"a@example.com","password":"123"}`, "password must be at least 6 characters"},
		{"unknown role", `{"name":"Al","email":"a@example.com","password":"secret1","role":"root"}`, "role must be one of: admin, user"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{
				registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			c, _ := newContext(http.MethodPost, "/api/auth/register", tc.body)
			requireHTTPError(t, NewAuthHandler(stub).Register(c), http.StatusBadRequest, tc.msg)
		})
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth/register", `{"name":"Bob","email":"bob@example.com","password":"secret1"}`)

	if err := NewAuthHandler(stub).Register(c); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.AuthResult{Token: "token123", User: &domain.User{ID: "u-1", Role: domain.RoleAdmin}}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if data := decodeData(t, rec); data["token"] != "token123" {
		t.Fatalf("expected token, got %v", data["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"bad"}`)

	if err := NewAuthHandler(stub).Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth/login", "{")

	requireHTTPError(t, NewAuthHandler(stub).Login(c), http.StatusBadRequest, "invalid request body")
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != testAdmin.UserID {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &domain.User{ID: userID, Email: testAdmin.Email, Role: domain.RoleAdmin}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/auth/me", "")
	withPrincipal(c, testAdmin)

	if err := NewAuthHandler(stub).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	user, _ := decodeData(t, rec)["user"].(map[string]any)
	if user["email"] != testAdmin.Email {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Me_NoPrincipal(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/api/auth/me", "")
	requireHTTPError(t, NewAuthHandler(&stubAuthService{}).Me(c), http.StatusUnauthorized, "")
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	var got []string
	stub := &stubAuthService{
		changePasswordFn: func(ctx context.Context, userID, current, next string) error {
			got = []string{userID, current, next}
			if current != "old-secret" {
				return domain.ErrInvalidCredentials
			}
			return nil
		},
	}

	c, rec := newContext(http.MethodPut, "/api/auth/password", `{"currentPassword":"old-secret","newPassword":"new-secret"}`)
	withPrincipal(c, testAdmin)
	if err := NewAuthHandler(stub).ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got[0] != testAdmin.UserID || got[2] != "new-secret" {
		t.Fatalf("unexpected args: %v", got)
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Message != "Password updated successfully" {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}

	c, _ = newContext(http.MethodPut, "/api/auth/password", `{"currentPassword":"wrong","newPassword":"new-secret"}`)
	withPrincipal(c, testAdmin)
	requireHTTPError(t, NewAuthHandler(stub).ChangePassword(c), http.StatusUnauthorized, "current password is incorrect")
}
