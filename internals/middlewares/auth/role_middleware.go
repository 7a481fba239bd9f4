package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
)

// OnlyRoles dipasang di level group (/api/g, /api/i).
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(helperAuth.LocRole).(string)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		if customMessage == "" {
			customMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customMessage)
	}
}

// Require mengevaluasi policy untuk op sekali di pintu masuk route.
func Require(op helperAuth.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := helperAuth.GetCaller(c)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		if err := helperAuth.Check(op, caller); err != nil {
			log.Printf("[AUTHZ] deny op=%s user=%s role=%s", op, caller.Username, caller.Role)
			return helper.JsonError(c, fiber.StatusForbidden, "Forbidden: "+string(op))
		}
		return c.Next()
	}
}
