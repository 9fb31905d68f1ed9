package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL = 10 * time.Minute
	// maxLimitedClients bounds the number of buckets held at once.
	maxLimitedClients = 10000
)

type connAddrKey struct{}

// ConnAddr records the connection's remote address before any middleware
// rewrites r.RemoteAddr from proxy headers. Wire it ahead of
// chimiddleware.RealIP.
func ConnAddr(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), connAddrKey{}, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientRateLimiter hands out one token bucket per client IP.
type ClientRateLimiter struct {
	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	trustedHops int
	clients     map[string]*clientLimiter
	now         func() time.Time
	lastScan    time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientRateLimiter allows each client perSecond requests with the given
// burst. trustedProxyHops is the number of proxies in front of the server that
// append to X-Forwarded-For; with 0 the header is ignored and clients are
// keyed by connection address.
func NewClientRateLimiter(perSecond float64, burst, trustedProxyHops int) *ClientRateLimiter {
	return &ClientRateLimiter{
		limit:       rate.Limit(perSecond),
		burst:       burst,
		trustedHops: trustedProxyHops,
		clients:     make(map[string]*clientLimiter),
		now:         time.Now,
	}
}

// Allow reports whether client may make a request now. New clients are
// refused while the limiter is full of recently active ones.
func (l *ClientRateLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastScan) > limiterIdleTTL {
		l.sweep(now)
	}

	c, ok := l.clients[client]
	if !ok {
		if len(l.clients) >= maxLimitedClients {
			l.sweep(now)
			if len(l.clients) >= maxLimitedClients {
				return false
			}
		}
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *ClientRateLimiter) sweep(now time.Time) {
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > limiterIdleTTL {
			delete(l.clients, key)
		}
	}
	l.lastScan = now
}

// Middleware rejects requests over the limit with 429.
func (l *ClientRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.clientKey(r)) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey picks the X-Forwarded-For entry appended by the outermost trusted
// proxy, falling back to the connection address. Entries left of that hop are
// client supplied and never used.
func (l *ClientRateLimiter) clientKey(r *http.Request) string {
	if l.trustedHops > 0 {
		var hops []string
		for _, v := range r.Header.Values("X-Forwarded-For") {
			hops = append(hops, strings.Split(v, ",")...)
		}
		if len(hops) >= l.trustedHops {
			hop := strings.TrimSpace(hops[len(hops)-l.trustedHops])
			if ip := net.ParseIP(hop); ip != nil {
				return ip.String()
			}
		}
	}

	addr, _ := r.Context().Value(connAddrKey{}).(string)
	if addr == "" {
		addr = r.RemoteAddr
	}
	return hostOnly(addr)
}

func hostOnly(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
