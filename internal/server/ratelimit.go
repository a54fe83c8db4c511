package server

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor tracks one client IP's limiter and when it was last seen so
// stale entries can be pruned.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns middleware enforcing a per-IP request budget of rpm
// requests per minute with a small burst allowance. rpm <= 0 disables
// limiting. It relies on middleware.RealIP having normalized RemoteAddr.
func RateLimit(rpm int) func(http.Handler) http.Handler {
	if rpm <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
	)

	limit := rate.Every(time.Minute / time.Duration(rpm))
	burst := rpm / 6
	if burst < 1 {
		burst = 1
	}

	allow := func(ip string) bool {
		mu.Lock()
		defer mu.Unlock()

		v, ok := visitors[ip]
		if !ok {
			// Bound memory under address churn.
			if len(visitors) > 10000 {
				cutoff := time.Now().Add(-10 * time.Minute)
				for addr, seen := range visitors {
					if seen.lastSeen.Before(cutoff) {
						delete(visitors, addr)
					}
				}
			}
			v = &visitor{limiter: rate.NewLimiter(limit, burst)}
			visitors[ip] = v
		}
		v.lastSeen = time.Now()
		return v.limiter.Allow()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allow(r.RemoteAddr) {
				http.Error(w, "rate limit exceeded, slow down", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
