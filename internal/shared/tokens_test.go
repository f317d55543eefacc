package shared

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client, "fb_token", time.Hour), mr
}

func TestTokenIssueResolve(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token, err := store.Issue(ctx, Identity{Kind: AccountFarmer, AccountID: "42"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, AccountFarmer, id.Kind)
	require.Equal(t, "42", id.AccountID)
}

func TestTokenResolveUnknown(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Resolve(context.Background(), "never-issued")
	require.ErrorIs(t, err, ErrTokenUnknown)

	_, err = store.Resolve(context.Background(), "")
	require.ErrorIs(t, err, ErrTokenMissing)
}

func TestTokenExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	token, err := store.Issue(ctx, Identity{Kind: AccountRetailer, AccountID: "1111-2222"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrTokenUnknown)
}

func TestTokenRevoke(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token, err := store.Issue(ctx, Identity{Kind: AccountFarmer, AccountID: "7"})
	require.NoError(t, err)
	require.NoError(t, store.Revoke(ctx, token))

	_, err = store.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrTokenUnknown)

	// Revoking twice is a no-op.
	require.NoError(t, store.Revoke(ctx, token))
}

func TestBearerToken(t *testing.T) {
	r, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	require.Empty(t, BearerToken(r))

	r.Header.Set("Authorization", "Basic abc")
	require.Empty(t, BearerToken(r))

	r.Header.Set("Authorization", "Bearer abc123")
	require.Equal(t, "abc123", BearerToken(r))
}
