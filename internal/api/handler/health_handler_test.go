package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

type healthBody struct {
	Success bool `json:"success"`
	Data    struct {
		Status       string                      `json:"status"`
		Database     string                      `json:"database"`
		Dependencies map[string]dependencyStatus `json:"dependencies"`
	} `json:"data"`
}

func up(context.Context) error   { return nil }
func down(context.Context) error {
	return errors.New("dial tcp db.internal:5432: connection refused")
}

func TestHealthHandler_Readiness(t *testing.T) {
	cases := []struct {
		name       string
		database   Pinger
		optional   map[string]Pinger
		wantCode   int
		wantStatus string
		wantDB     string
	}{
		{"all up", up, map[string]Pinger{"redis": up, "mongodb": up}, http.StatusOK, "ok", "connected"},
		{"optional down", up, map[string]Pinger{"redis": down}, http.StatusOK, "degraded", "connected"},
		{"database down", down, nil, http.StatusServiceUnavailable, "unhealthy", "disconnected"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(tc.database, tc.optional, false)
			c, rec := newContext(http.MethodGet, "/health", "")
			if err := h.Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}

			var body healthBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Data.Status != tc.wantStatus || body.Data.Database != tc.wantDB {
				t.Fatalf("unexpected body: %+v", body.Data)
			}
			if len(body.Data.Dependencies) != len(tc.optional)+1 {
				t.Fatalf("unexpected dependencies: %+v", body.Data.Dependencies)
			}
		})
	}
}

func TestHealthHandler_ErrorDetails(t *testing.T) {
	for _, show := range []bool{false, true} {
		h := NewHealthHandler(down, map[string]Pinger{"redis": down}, show)
		c, rec := newContext(http.MethodGet, "/health", "")
		if err := h.Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}

		var body healthBody
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		for name, dep := range body.Data.Dependencies {
			if dep.Status != "unhealthy" {
				t.Fatalf("%s: unexpected status %q", name, dep.Status)
			}
			if show && dep.Error == "" {
				t.Fatalf("%s: expected driver error when details are enabled", name)
			}
			if !show && dep.Error != "" {
				t.Fatalf("%s: driver error leaked: %q", name, dep.Error)
			}
		}
		if !show && strings.Contains(rec.Body.String(), "db.internal") {
			t.Fatalf("response leaks host: %s", rec.Body.String())
		}
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler(down, nil, false)
	c, rec := newContext(http.MethodGet, "/health/live", "")
	if err := h.Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
