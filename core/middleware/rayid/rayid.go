// Package rayid tags every request with a unique id.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is echoed on every response and honoured on requests.
	Header = "X-Ray-ID"
	// LocalKey is the fiber.Ctx locals key read by logger.WithRayID.
	LocalKey = "ray_id"
)

// New creates the middleware. An incoming X-Ray-ID header is reused.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}

// FromContext returns the request's ray id, or "" outside the middleware.
func FromContext(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalKey).(string)
	return id
}
