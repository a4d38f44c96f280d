package auth

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// Middleware rejects requests without a valid token and stores the principal
// on the request's user context. Browsers cannot set headers on websocket
// upgrades, so a token query parameter is accepted as a fallback.
func Middleware(v *Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			p   Principal
			err error
		)
		if h := c.Get(fiber.HeaderAuthorization); h != "" {
			p, err = v.PrincipalFromHeader(h)
		} else if tok := c.Query("token"); tok != "" {
			p, err = v.PrincipalFromToken(tok)
		} else {
			err = errMissingAuthorization
		}
		if err != nil {
			log.WithError(err).WithField("path", c.Path()).Debug("unauthorized request")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		c.SetUserContext(WithPrincipal(c.UserContext(), p))
		c.Locals("principal", p)
		return c.Next()
	}
}
