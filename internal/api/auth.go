package api

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"

	"estudio/internal/config"
	"estudio/internal/models"

	"golang.org/x/time/rate"
)

// Identity is the caller resolved from an API key.
type Identity struct {
	UserID string
	Name   string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

type identityKey struct{}

func identityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Auth resolves API keys into identities and applies per-key rate limits.
// Keys are issued out of band through configuration.
type Auth struct {
	cfg       config.AuthConfig
	rateLimit config.RateLimitConfig
	clients   map[string]config.APIClientKey
	limiters  sync.Map // map[string]*rate.Limiter
}

func NewAuth(cfg config.AuthConfig, rateLimit config.RateLimitConfig) *Auth {
	clients := make(map[string]config.APIClientKey, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		clients[k.Key] = k
	}
	return &Auth{cfg: cfg, rateLimit: rateLimit, clients: clients}
}

// Wrap rate-limits every request and attaches the caller identity when a
// valid API key is presented. Unknown keys are rejected outright; absent
// keys pass through so public endpoints stay reachable.
func (a *Auth) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.allow(a.clientKey(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		apiKey := strings.TrimSpace(r.Header.Get(a.header()))
		if apiKey == "" || !a.cfg.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		client, ok := a.clients[apiKey]
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid api key")
			return
		}

		identity := Identity{UserID: client.UserID, Name: client.Name, Role: client.Role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, identity)))
	})
}

// RequireUser guards member endpoints.
func (a *Auth) RequireUser(next func(http.ResponseWriter, *http.Request, Identity)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFrom(r.Context())
		if !ok {
			if !a.cfg.Enabled {
				// Auth disabled is a development mode; act as a generic admin.
				next(w, r, Identity{UserID: "dev", Name: "dev", Role: models.RoleAdmin})
				return
			}
			writeError(w, http.StatusUnauthorized, "api key required")
			return
		}
		next(w, r, identity)
	}
}

// RequireAdmin guards admin endpoints.
func (a *Auth) RequireAdmin(next func(http.ResponseWriter, *http.Request, Identity)) http.HandlerFunc {
	return a.RequireUser(func(w http.ResponseWriter, r *http.Request, identity Identity) {
		if !identity.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin role required")
			return
		}
		next(w, r, identity)
	})
}

func (a *Auth) header() string {
	if h := strings.TrimSpace(a.cfg.HeaderAPIKey); h != "" {
		return h
	}
	return "x-api-key"
}

func (a *Auth) clientKey(r *http.Request) string {
	if apiKey := strings.TrimSpace(r.Header.Get(a.header())); apiKey != "" {
		return apiKey
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return "unknown"
}

func (a *Auth) allow(key string) bool {
	if a.rateLimit.RPS <= 0 {
		return true
	}
	return a.getLimiter(key).Allow()
}

func (a *Auth) getLimiter(key string) *rate.Limiter {
	if v, ok := a.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := a.rateLimit.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(a.rateLimit.RPS), burst)
	actual, loaded := a.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}
