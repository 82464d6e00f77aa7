package middleware

import (
	"strconv"
	"time"

	"github.com/khabarhub/newsads/app/dto"
	"github.com/khabarhub/newsads/app/services"

	"github.com/gofiber/fiber/v3"
)

// RateLimitMiddleware applies per-client sliding-window limits to route groups
type RateLimitMiddleware struct {
	limiter services.RateLimitService
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(limiter services.RateLimitService) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit returns a handler enforcing the given limit per client IP within the
// window. The bucket keeps different route groups from sharing one counter.
func (m *RateLimitMiddleware) Limit(bucket string, limit int, window time.Duration) fiber.Handler {
	return func(c fiber.Ctx) error {
		key := services.RateLimitKey(c.IP(), bucket)

		decision, err := m.limiter.Allow(c.Context(), key, limit, window)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
				Success: false,
				Message: "Rate limit check failed",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_CHECK_FAILED",
				},
			})
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Set("X-RateLimit-Reset", strconv.Itoa(decision.ResetSeconds))

		if !decision.Allowed {
			c.Set("Retry-After", strconv.Itoa(decision.ResetSeconds))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests, slow down",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		}

		return c.Next()
	}
}
