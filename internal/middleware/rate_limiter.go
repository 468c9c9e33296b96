package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/xketsu/weather-app/internal/config"
	"github.com/xketsu/weather-app/internal/model"
)

// visitor holds the limiter and last seen time for one key.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies two token buckets per client IP: a global one over
// all requests and a stricter one per requested city. State lives on the
// struct so each server owns its own limiter.
type RateLimiter struct {
	cfg config.RateLimitConfig

	muGlobal sync.Mutex
	global   map[string]*visitor // key: ip

	muCity  sync.Mutex
	perCity map[string]map[string]*visitor // key: ip -> city

	stop chan struct{}
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		cfg:     cfg,
		global:  make(map[string]*visitor),
		perCity: make(map[string]map[string]*visitor),
		stop:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Close stops the background cleanup loop.
func (rl *RateLimiter) Close() {
	close(rl.stop)
}

func (rl *RateLimiter) globalLimiter(ip string) *rate.Limiter {
	rl.muGlobal.Lock()
	defer rl.muGlobal.Unlock()
	v, ok := rl.global[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rl.cfg.GlobalRate), rl.cfg.GlobalBurst)}
		rl.global[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cityLimiter(ip, city string) *rate.Limiter {
	rl.muCity.Lock()
	defer rl.muCity.Unlock()
	if _, ok := rl.perCity[ip]; !ok {
		rl.perCity[ip] = make(map[string]*visitor)
	}
	v, ok := rl.perCity[ip][city]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rl.cfg.PerCityRate), rl.cfg.PerCityBurst)}
		rl.perCity[ip][city] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupLoop evicts visitors not seen within the cleanup interval.
func (rl *RateLimiter) cleanupLoop() {
	interval := rl.cfg.CleanupInterval
	if interval <= 0 {
		interval = 3 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-interval)
			rl.muGlobal.Lock()
			for ip, v := range rl.global {
				if v.lastSeen.Before(cutoff) {
					delete(rl.global, ip)
				}
			}
			rl.muGlobal.Unlock()

			rl.muCity.Lock()
			for ip, cities := range rl.perCity {
				for city, v := range cities {
					if v.lastSeen.Before(cutoff) {
						delete(cities, city)
					}
				}
				if len(cities) == 0 {
					delete(rl.perCity, ip)
				}
			}
			rl.muCity.Unlock()
		}
	}
}

// Middleware enforces both buckets before passing the request on.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if !rl.globalLimiter(ip).Allow() {
			writeTooMany(w, "Rate limit exceeded. Please slow down.")
			return
		}

		if city := r.URL.Query().Get("city"); city != "" {
			if !rl.cityLimiter(ip, city).Allow() {
				writeTooMany(w, "Rate limit exceeded for this city. Please slow down.")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeTooMany(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse(msg))
}
