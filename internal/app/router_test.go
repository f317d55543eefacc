package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/farmbazaar/farmbazaar/internal/shared"
)

type mountFunc func(r chi.Router)

func (f mountFunc) MountRoutes(r chi.Router) { f(r) }

func newTestRouter(t *testing.T) (http.Handler, *shared.TokenStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	tokens := shared.NewTokenStore(client, "test_token", time.Hour)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(RouterParams{
		Logger:     logger,
		Config:     &Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second},
		TokenStore: tokens,
		Public: []Mounter{mountFunc(func(r chi.Router) {
			r.Post("/login", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})},
		Protected: []Mounter{mountFunc(func(r chi.Router) {
			r.Get("/private", func(w http.ResponseWriter, r *http.Request) {
				id, ok := shared.IdentityFromContext(r.Context())
				require.True(t, ok)
				_, _ = w.Write([]byte(string(id.Kind)))
			})
		})},
	})
	return router, tokens
}

func TestRouterHealthAndPublicRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterProtectedRequiresToken(t *testing.T) {
	router, tokens := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	token, err := tokens.Issue(context.Background(), shared.Identity{
		Kind:      shared.AccountFarmer,
		AccountID: "7",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "farmer", rec.Body.String())
}
