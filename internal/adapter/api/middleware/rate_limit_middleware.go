package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"cwrs/pkg/logger"
)

// Limiter is satisfied by ratelimit.RateLimiter.
type Limiter interface {
	Allow(subject, action string) (bool, time.Duration)
}

// RateLimit throttles requests per client IP under action's policy. Blocked
// requests get 429 with a Retry-After header.
func RateLimit(limiter Limiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			ok, wait := limiter.Allow(ip, action)
			if !ok {
				retry := int(math.Ceil(wait.Seconds()))
				logger.Warn("RATE LIMIT: blocked %s from IP %s (retry in %ds)", action, ip, retry)

				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":       "Rate limit exceeded",
					"retry_after": retry,
				})
			}

			return next(c)
		}
	}
}
