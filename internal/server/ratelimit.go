package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/me/fleetgate/pkg/model"
)

// limiterTTL is how long an idle per-IP limiter is kept before pruning.
const limiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter rate-limits login attempts per client IP. Entries for idle
// clients are pruned lazily on access.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int

	lastPrune time.Time
}

func newIPLimiter(perMinute, burst int) *ipLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = perMinute
	}
	return &ipLimiter{
		clients:   make(map[string]*clientLimiter),
		limit:     rate.Limit(float64(perMinute) / 60.0),
		burst:     burst,
		lastPrune: time.Now(),
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastPrune) > limiterTTL {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > limiterTTL {
				delete(l.clients, k)
			}
		}
		l.lastPrune = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.Allow()
}

// middleware rejects over-limit requests with 429. Assumes RealIP ran first
// so RemoteAddr reflects the client.
func (l *ipLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !l.allow(ip) {
			reqID := RequestIDFromContext(r.Context())
			respondError(w, reqID, http.StatusTooManyRequests, &model.APIError{
				Code:    model.ErrRateLimited,
				Message: "too many login attempts, slow down",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
