package middleware

import (
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Availability bounds the number of requests in flight toward the
// service. Beyond maxInFlight callers get 503: the explicit
// backpressure signal for the bounded submission queue. Health and
// metrics stay reachable so operators can still see the overload.
type Availability struct {
	maxInFlight int64
	inFlight    atomic.Int64
}

func NewAvailability(maxInFlight int64) *Availability {
	return &Availability{maxInFlight: maxInFlight}
}

func (a *Availability) InFlight() int64 {
	return a.inFlight.Load()
}

func (a *Availability) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// edge case: observability endpoints are never gated
		if c.Path() == "/health" || c.Path() == "/metrics" {
			return c.Next()
		}

		if a.maxInFlight > 0 && a.inFlight.Load() >= a.maxInFlight {
			log.Warn().
				Str("path", c.Path()).
				Str("method", c.Method()).
				Int64("in_flight", a.inFlight.Load()).
				Int64("max_in_flight", a.maxInFlight).
				Msg("Request rejected: service overloaded")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "Service unavailable",
				"message": "The service is currently overloaded. Please try again later.",
			})
		}

		a.inFlight.Add(1)
		defer a.inFlight.Add(-1)
		return c.Next()
	}
}
