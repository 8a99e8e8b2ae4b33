package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/tutorwise/tutorwise-api/configs"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// ResolveActor reads the verified JWT claims once and stores the actor on
// the request context. Handlers and capability checks read that copy
// instead of re-parsing claims.
func ResolveActor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": "error", "message": "Missing authentication context", "data": nil})
		}
		claims := token.Claims.(jwt.MapClaims)

		rawID, _ := claims["user_id"].(string)
		id, err := uuid.Parse(rawID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": "error", "message": "Invalid token subject", "data": nil})
		}

		role, _ := claims["role"].(string)
		c.Locals("actor", Actor{ID: id, Role: Role(role)})
		return c.Next()
	}
}

// CurrentActor returns the actor resolved by ResolveActor. The zero
// Actor, which holds no capabilities, comes back on routes that skipped
// it.
func CurrentActor(c *fiber.Ctx) Actor {
	actor, _ := c.Locals("actor").(Actor)
	return actor
}

func RequireCapability(cap Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentActor(c).Can(cap) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: missing capability " + string(cap),
			})
		}
		return c.Next()
	}
}
