package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

// DefaultBalanceTTL bounds how stale a cached balance may be.
const DefaultBalanceTTL = 5 * time.Second

// setIfNewer stores ARGV[1] under KEYS[1] unless the cached snapshot already
// carries version ARGV[2] or later. It returns 1 when the snapshot was written.
var setIfNewer = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if current then
	local ok, snap = pcall(cjson.decode, current)
	if ok and type(snap) == "table" and tonumber(snap.version) and tonumber(snap.version) >= tonumber(ARGV[2]) then
		return 0
	end
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
return 1
`)

// BalanceCache implements usecase.BalanceCache using Redis.
type BalanceCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewBalanceCache creates a new BalanceCache. A non-positive ttl uses DefaultBalanceTTL.
func NewBalanceCache(client redis.Cmdable, ttl time.Duration) *BalanceCache {
	if ttl <= 0 {
		ttl = DefaultBalanceTTL
	}
	return &BalanceCache{
		client: client,
		prefix: "balance:",
		ttl:    ttl,
	}
}

type accountSnapshot struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Get returns the cached snapshot, or usecase.ErrCacheMiss.
func (c *BalanceCache) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	raw, err := c.client.Get(ctx, c.prefix+accountID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrCacheMiss
		}
		return nil, err
	}

	var snap accountSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode balance snapshot: %w", err)
	}

	return &domain.Account{
		ID:        snap.ID,
		UserID:    snap.UserID,
		Currency:  snap.Currency,
		Balance:   snap.Balance,
		Version:   snap.Version,
		CreatedAt: snap.CreatedAt,
		UpdatedAt: snap.UpdatedAt,
	}, nil
}

// Set stores a snapshot of account with the configured TTL. A snapshot older than
// the cached one is discarded, so a slow reader cannot overwrite a newer balance.
func (c *BalanceCache) Set(ctx context.Context, account *domain.Account) error {
	raw, err := json.Marshal(accountSnapshot{
		ID:        account.ID,
		UserID:    account.UserID,
		Currency:  account.Currency,
		Balance:   account.Balance,
		Version:   account.Version,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	})
	if err != nil {
		return err
	}
	return setIfNewer.Run(ctx, c.client,
		[]string{c.prefix + account.ID},
		raw, account.Version, c.ttl.Milliseconds(),
	).Err()
}

// Invalidate removes the snapshots of accountIDs.
func (c *BalanceCache) Invalidate(ctx context.Context, accountIDs ...string) error {
	if len(accountIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		keys = append(keys, c.prefix+id)
	}
	return c.client.Del(ctx, keys...).Err()
}
