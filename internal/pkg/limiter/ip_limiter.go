/*
Package limiter provides IP-based request rate limiting.

It keeps one token bucket (rate.Limiter) per client IP and periodically
removes buckets that have refilled, so idle IPs do not accumulate forever.
*/
package limiter

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"gochat/internal/pkg/logx"
)

// cleanupInterval is how often full (idle) buckets are swept.
const cleanupInterval = 3 * time.Minute

// IPRateLimiter hands out a token-bucket limiter per client IP.
type IPRateLimiter struct {
	mu     sync.RWMutex
	limits map[string]*rate.Limiter

	// r and b are the rate and burst applied to every new bucket.
	r rate.Limit
	b int
}

// NewIPRateLimiter creates a limiter with the given per-IP rate and burst
// and starts the background sweep of idle buckets.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	l := &IPRateLimiter{
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}

	go l.sweep()

	return l
}

// Allow reports whether a request from the given IP may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.limiterFor(ip).Allow()
}

// limiterFor returns the bucket for ip, creating it on first sight.
func (l *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limits[ip]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok = l.limits[ip]; !ok {
		lim = rate.NewLimiter(l.r, l.b)
		l.limits[ip] = lim
	}
	return lim
}

// sweep periodically removes buckets whose tokens have fully refilled,
// meaning the IP has been idle long enough to forget.
func (l *IPRateLimiter) sweep() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		removed := 0
		for ip, lim := range l.limits {
			if lim.TokensAt(time.Now()) >= float64(lim.Burst()) {
				delete(l.limits, ip)
				removed++
			}
		}
		remaining := len(l.limits)
		l.mu.Unlock()

		logx.Info("Rate limiter sweep finished", "removed", removed, "remaining", remaining)
	}
}

// ClientIP extracts the host part of an http RemoteAddr for limiting.
func ClientIP(remoteAddr string) string {
	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		ip = remoteAddr
	}
	if ip == "" {
		ip = "unknown_ip"
	}
	return ip
}
