package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AccountKind discriminates the two account types a token can belong to.
type AccountKind string

const (
	// AccountFarmer marks tokens issued to farmer accounts.
	AccountFarmer AccountKind = "farmer"
	// AccountRetailer marks tokens issued to retailer accounts.
	AccountRetailer AccountKind = "retailer"
)

// TokenStore issues and resolves opaque bearer tokens backed by Redis.
type TokenStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Identity is the account bound to an issued token.
type Identity struct {
	Kind      AccountKind `json:"kind"`
	AccountID string      `json:"account_id"`
}

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client, prefix string, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, prefix: prefix, ttl: ttl}
}

// Issue generates a new token for the identity and stores it with TTL.
func (ts *TokenStore) Issue(ctx context.Context, id Identity) (string, error) {
	token := uuid.NewString()
	payload, err := json.Marshal(id)
	if err != nil {
		return "", fmt.Errorf("shared/tokens: marshal identity: %w", err)
	}
	if err := ts.client.Set(ctx, ts.key(token), payload, ts.ttl).Err(); err != nil {
		return "", fmt.Errorf("shared/tokens: store token: %w", err)
	}
	return token, nil
}

// Resolve returns the identity bound to a token, refreshing its TTL.
func (ts *TokenStore) Resolve(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrTokenMissing
	}
	payload, err := ts.client.Get(ctx, ts.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Identity{}, ErrTokenUnknown
		}
		return Identity{}, fmt.Errorf("shared/tokens: fetch token: %w", err)
	}
	var id Identity
	if err := json.Unmarshal(payload, &id); err != nil {
		return Identity{}, fmt.Errorf("shared/tokens: unmarshal identity: %w", err)
	}
	_ = ts.client.Expire(ctx, ts.key(token), ts.ttl).Err()
	return id, nil
}

// Revoke deletes a token, ending the session it represents.
func (ts *TokenStore) Revoke(ctx context.Context, token string) error {
	if err := ts.client.Del(ctx, ts.key(token)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("shared/tokens: revoke token: %w", err)
	}
	return nil
}

func (ts *TokenStore) key(token string) string {
	return ts.prefix + ":" + token
}

// BearerToken extracts the bearer token from an Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const scheme = "Bearer "
	if !strings.HasPrefix(header, scheme) {
		return ""
	}
	return strings.TrimSpace(header[len(scheme):])
}

type identityCtxKey struct{}

// ContextWithIdentity stores the resolved identity on the context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFromContext returns the identity resolved by the auth middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok
}
