package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"movie-review/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an untouched client bucket is kept.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters holds one token bucket per client IP. Buckets idle for longer
// than ttl are swept, at most once per ttl, while handling a request.
type ipLimiters struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	clients   map[string]*clientLimiter
}

func newIPLimiters(rps rate.Limit, burst int, ttl time.Duration) *ipLimiters {
	return &ipLimiters{
		rps:     rps,
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.ttl {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) >= l.ttl {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *ipLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimitPerIP applies a token bucket per client IP. The IP is the host of
// RemoteAddr; forwarding headers only count when the router was configured to
// trust them upstream.
func RateLimitPerIP(rps rate.Limit, burst int, logger *zap.Logger) func(http.Handler) http.Handler {
	limiters := newIPLimiters(rps, burst, limiterIdleTTL)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if limiters.allow(ip) {
				next.ServeHTTP(w, r)
				return
			}
			logger.Warn("Rate limit exceeded",
				zap.String("ip", ip),
				zap.String("path", r.URL.Path))
			utils.ResponseTooManyRequests(w)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
