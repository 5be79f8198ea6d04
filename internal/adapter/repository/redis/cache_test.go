package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

const testAccountID = "3d6f1a2b-4c5d-4e6f-8a9b-0c1d2e3f4a5b"

func TestBalanceCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewBalanceCache(client, time.Minute)
	ctx := context.Background()

	account := &domain.Account{
		ID:        testAccountID,
		Currency:  "USD",
		Balance:   decimal.RequireFromString("1234.5678"),
		Version:   7,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := cache.Set(ctx, account); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := cache.Get(ctx, testAccountID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !got.Balance.Equal(account.Balance) || got.Version != 7 || got.Currency != "USD" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if !got.UpdatedAt.Equal(account.UpdatedAt) {
		t.Fatalf("expected updated_at %v, got %v", account.UpdatedAt, got.UpdatedAt)
	}
}

func TestBalanceCacheMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	_, err := NewBalanceCache(client, time.Minute).Get(context.Background(), testAccountID)
	if !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestBalanceCacheExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewBalanceCache(client, 2*time.Second)
	ctx := context.Background()

	if err := cache.Set(ctx, &domain.Account{ID: testAccountID, Balance: decimal.NewFromInt(1)}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	mr.FastForward(3 * time.Second)

	if _, err := cache.Get(ctx, testAccountID); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected snapshot to expire, got %v", err)
	}
}

func TestBalanceCacheInvalidate(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewBalanceCache(client, time.Minute)
	ctx := context.Background()

	other := "0b7a4c1e-3f5d-4e2a-8c9b-1d2e3f4a5b6c"
	for _, id := range []string{testAccountID, other} {
		if err := cache.Set(ctx, &domain.Account{ID: id, Balance: decimal.NewFromInt(1)}); err != nil {
			t.Fatalf("set failed: %v", err)
		}
	}

	if err := cache.Invalidate(ctx, testAccountID, other); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if mr.Exists("balance:" + testAccountID) || mr.Exists("balance:"+other) {
		t.Fatalf("expected keys to be removed")
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("empty invalidate failed: %v", err)
	}
}

func TestBalanceCacheCorruptSnapshot(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	if err := mr.Set("balance:"+testAccountID, "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, err := NewBalanceCache(client, time.Minute).Get(context.Background(), testAccountID)
	if err == nil || errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestBalanceCacheSetKeepsNewerVersion(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewBalanceCache(client, time.Minute)
	ctx := context.Background()

	tests := []struct {
		name        string
		version     int64
		balance     string
		wantVersion int64
		wantBalance string
	}{
		{"first write", 2, "1500", 2, "1500"},
		{"older snapshot discarded", 1, "1000", 2, "1500"},
		{"same version discarded", 2, "1", 2, "1500"},
		{"newer snapshot replaces", 3, "1200", 3, "1200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cache.Set(ctx, &domain.Account{
				ID:      testAccountID,
				Balance: decimal.RequireFromString(tt.balance),
				Version: tt.version,
			})
			if err != nil {
				t.Fatalf("set failed: %v", err)
			}

			got, err := cache.Get(ctx, testAccountID)
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			if got.Version != tt.wantVersion || !got.Balance.Equal(decimal.RequireFromString(tt.wantBalance)) {
				t.Fatalf("expected v%d %s, got v%d %s", tt.wantVersion, tt.wantBalance, got.Version, got.Balance)
			}
		})
	}

	if ttl := mr.TTL("balance:" + testAccountID); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected ttl within a minute, got %v", ttl)
	}
}

func TestBalanceCacheSetReplacesCorruptSnapshot(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	if err := mr.Set("balance:"+testAccountID, "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	cache := NewBalanceCache(client, time.Minute)
	if err := cache.Set(context.Background(), &domain.Account{ID: testAccountID, Balance: decimal.NewFromInt(3), Version: 1}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := cache.Get(context.Background(), testAccountID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Version != 1 {
		t.Fatalf("expected corrupt snapshot to be replaced, got %+v", got)
	}
}
