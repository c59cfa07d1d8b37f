package ratelimit

import (
	"net/http"
	"strconv"

	limiter "github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/noah-isme/backend-acara/internal/common"
)

// New builds a limiter from a formatted rate such as "120-M". A nil store
// falls back to the in-memory driver.
func New(formatted string, store limiter.Store) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	if store == nil {
		store = limitermemory.NewStore()
	}
	return limiter.New(store, rate), nil
}

// Middleware enforces the limit per client key before delegating to the next
// handler. Limiter errors fail open.
type Middleware struct {
	L       *limiter.Limiter
	KeyFunc func(*http.Request) string
	OnError func(error)
}

func (m Middleware) key(r *http.Request) string {
	if m.KeyFunc != nil {
		return m.KeyFunc(r)
	}
	return m.L.GetIPKey(r)
}

// Handler implements the http.Handler middleware interface.
func (m Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.L == nil {
			next.ServeHTTP(w, r)
			return
		}
		lctx, err := m.L.Get(r.Context(), m.key(r))
		if err != nil {
			if m.OnError != nil {
				m.OnError(err)
			}
			next.ServeHTTP(w, r)
			return
		}
		headers := w.Header()
		headers.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		headers.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))
		if lctx.Reached {
			common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
