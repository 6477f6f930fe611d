package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRateLimiter(client), mr
}

func TestCheckLoginAttempt(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 1; i <= loginMaxAttempts; i++ {
		allowed, remaining, err := limiter.CheckLoginAttempt(ctx, "10.0.0.1", "a@b.test")
		if err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", i, err)
		}
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i)
		}
		if want := int64(loginMaxAttempts - i); remaining != want {
			t.Fatalf("attempt %d: remaining = %d, want %d", i, remaining, want)
		}
	}

	allowed, remaining, err := limiter.CheckLoginAttempt(ctx, "10.0.0.1", "a@b.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("attempt past the budget should be blocked")
	}
	if remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}
}

func TestCheckLoginAttemptSeparateKeys(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < loginMaxAttempts+2; i++ {
		limiter.CheckLoginAttempt(ctx, "10.0.0.1", "a@b.test")
	}

	allowed, _, err := limiter.CheckLoginAttempt(ctx, "10.0.0.2", "a@b.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatal("different ip should have its own budget")
	}
}

func TestCheckLoginAttemptWindowExpiry(t *testing.T) {
	limiter, mr := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < loginMaxAttempts+1; i++ {
		limiter.CheckLoginAttempt(ctx, "10.0.0.1", "a@b.test")
	}

	mr.FastForward(loginWindow)

	allowed, remaining, err := limiter.CheckLoginAttempt(ctx, "10.0.0.1", "a@b.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatal("budget should reset after the window elapses")
	}
	if remaining != loginMaxAttempts-1 {
		t.Fatalf("remaining = %d, want %d", remaining, loginMaxAttempts-1)
	}
}

func TestResetLoginAttempts(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < loginMaxAttempts+1; i++ {
		limiter.CheckLoginAttempt(ctx, "10.0.0.1", "a@b.test")
	}

	if err := limiter.ResetLoginAttempts(ctx, "10.0.0.1", "a@b.test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	allowed, remaining, err := limiter.CheckLoginAttempt(ctx, "10.0.0.1", "a@b.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatal("first attempt after a reset should be allowed")
	}
	if remaining != loginMaxAttempts-1 {
		t.Fatalf("remaining after reset = %d, want %d", remaining, loginMaxAttempts-1)
	}
}
