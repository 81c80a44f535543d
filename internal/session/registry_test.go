package session

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRegistry(t *testing.T) (*RedisRegistry, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	return NewRedisRegistry(cache, time.Hour, time.Minute), mr
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	reg, _ := setupRegistry(t)
	ctx := context.Background()

	active, err := reg.IsActive(ctx, "p1")
	if err != nil {
		t.Fatalf("is active: %v", err)
	}
	if active {
		t.Fatal("expected inactive before login")
	}

	if err := reg.Login(ctx, "p1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	active, err = reg.IsActive(ctx, "p1")
	if err != nil {
		t.Fatalf("is active: %v", err)
	}
	if !active {
		t.Fatal("expected active after login")
	}

	if err := reg.Logout(ctx, "p1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	active, err = reg.IsActive(ctx, "p1")
	if err != nil {
		t.Fatalf("is active: %v", err)
	}
	if active {
		t.Fatal("expected inactive after logout")
	}
}

func TestBeginRecoveryClaimsSlotOnce(t *testing.T) {
	reg, _ := setupRegistry(t)
	ctx := context.Background()

	ok, err := reg.BeginRecovery(ctx, "p1")
	if err != nil {
		t.Fatalf("begin recovery: %v", err)
	}
	if !ok {
		t.Fatal("expected first claim to win")
	}

	ok, err = reg.BeginRecovery(ctx, "p1")
	if err != nil {
		t.Fatalf("begin recovery: %v", err)
	}
	if ok {
		t.Fatal("expected second claim to lose while in flight")
	}

	if err := reg.EndRecovery(ctx, "p1"); err != nil {
		t.Fatalf("end recovery: %v", err)
	}
	ok, err = reg.BeginRecovery(ctx, "p1")
	if err != nil {
		t.Fatalf("begin recovery: %v", err)
	}
	if !ok {
		t.Fatal("expected claim to succeed after release")
	}
}

func TestRecoverySlotExpires(t *testing.T) {
	reg, mr := setupRegistry(t)
	ctx := context.Background()

	if ok, _ := reg.BeginRecovery(ctx, "p1"); !ok {
		t.Fatal("expected first claim to win")
	}
	mr.FastForward(2 * time.Minute)
	ok, err := reg.BeginRecovery(ctx, "p1")
	if err != nil {
		t.Fatalf("begin recovery: %v", err)
	}
	if !ok {
		t.Fatal("expected claim to succeed after guard TTL expired")
	}
}
