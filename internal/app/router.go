package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmbazaar/farmbazaar/internal/shared"
)

// Mounter registers a module's routes on a router.
type Mounter interface {
	MountRoutes(r chi.Router)
}

// RouterParams collects everything the router needs.
type RouterParams struct {
	Logger     *slog.Logger
	Config     *Config
	TokenStore *shared.TokenStore

	// Public mounts serve registration and login.
	Public []Mounter
	// Protected mounts sit behind the bearer token middleware.
	Protected []Mounter
}

// NewRouter assembles the HTTP router with the full middleware chain.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{Logger: params.Logger, Config: params.Config}) {
		r.Use(mw)
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("farmbazaar API is running"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, m := range params.Public {
		m.MountRoutes(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(RequireToken(params.TokenStore, params.Logger))
		for _, m := range params.Protected {
			m.MountRoutes(r)
		}
	})

	return r
}
