package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// staleClientAge is how long a client entry may sit idle before it is
// dropped from the limiter table.
const staleClientAge = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns Echo middleware that applies a per-client token bucket.
// Clients are keyed by remote IP. Requests over the limit receive 429.
func RateLimit(perSecond float64, burst int) echo.MiddlewareFunc {
	var (
		mu        sync.Mutex
		clients   = map[string]*clientLimiter{}
		lastPrune = time.Now()
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			mu.Lock()
			now := time.Now()
			if now.Sub(lastPrune) > staleClientAge {
				for ip, cl := range clients {
					if now.Sub(cl.lastSeen) > staleClientAge {
						delete(clients, ip)
					}
				}
				lastPrune = now
			}

			ip := c.RealIP()
			cl, ok := clients[ip]
			if !ok {
				cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
				clients[ip] = cl
			}
			cl.lastSeen = now
			allowed := cl.limiter.Allow()
			mu.Unlock()

			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
