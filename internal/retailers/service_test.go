package retailers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmbazaar/farmbazaar/internal/shared"
)

type memoryRepo struct {
	byAadhaar map[string]Retailer
	byMobile  map[string]Retailer
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byAadhaar: map[string]Retailer{}, byMobile: map[string]Retailer{}}
}

func (r *memoryRepo) Create(ctx context.Context, rt Retailer) error {
	r.byAadhaar[rt.Aadhaar] = rt
	r.byMobile[rt.MobileNumber] = rt
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, aadhaar string) (*Retailer, error) {
	rt, ok := r.byAadhaar[aadhaar]
	if !ok {
		return nil, ErrNotFound
	}
	return &rt, nil
}

func (r *memoryRepo) FindByMobile(ctx context.Context, mobile string) (*Retailer, error) {
	rt, ok := r.byMobile[mobile]
	if !ok {
		return nil, ErrNotFound
	}
	return &rt, nil
}

func newTestService(t *testing.T) (*Service, *memoryRepo, *shared.TokenStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	tokens := shared.NewTokenStore(client, "test_token", time.Hour)
	repo := newMemoryRepo()
	return NewService(repo, tokens), repo, tokens
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo, _ := newTestService(t)

	rt, err := svc.Register(context.Background(), RegisterRequest{
		Aadhaar:        "555566667777",
		EnterpriseName: "Fresh Mart",
		OwnerName:      "Anita Shah",
		MobileNumber:   "9811111111",
		Password:       "s3cret-pass",
		State:          "Maharashtra",
		City:           "Pune",
		GSTIN:          "27AAAAA0000A1Z5",
		PAN:            "AAAAA1111A",
	})
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", rt.PasswordHash)

	stored := repo.byAadhaar["555566667777"]
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestAuthenticateIssuesRetailerToken(t *testing.T) {
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Aadhaar: "555566667777", EnterpriseName: "Fresh Mart", OwnerName: "Anita Shah",
		MobileNumber: "9811111111", Password: "s3cret-pass", State: "Maharashtra",
	})
	require.NoError(t, err)

	rt, token, err := svc.Authenticate(ctx, "9811111111", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, "555566667777", rt.Aadhaar)
	require.NotEmpty(t, token)

	identity, err := tokens.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, shared.AccountRetailer, identity.Kind)
	require.Equal(t, "555566667777", identity.AccountID)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Aadhaar: "555566667777", EnterpriseName: "Fresh Mart", OwnerName: "Anita Shah",
		MobileNumber: "9811111111", Password: "s3cret-pass", State: "Maharashtra",
	})
	require.NoError(t, err)

	_, _, err = svc.Authenticate(ctx, "9811111111", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, _, err = svc.Authenticate(ctx, "0000000000", "s3cret-pass")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
