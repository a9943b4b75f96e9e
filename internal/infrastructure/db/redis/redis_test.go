package redis

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestConnect_Unreachable(t *testing.T) {
	start := time.Now()
	client, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 500 * time.Millisecond})
	if err == nil {
		t.Fatal("expected an error for an unreachable store")
	}
	if client != nil {
		t.Fatal("client must not be returned on failure")
	}
	if !strings.HasPrefix(err.Error(), "rate limit store ping:") {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("connect ignored the timeout: %s", elapsed)
	}
}
