package middleware

import (
	"strings"

	"estepage_storefront/internal/model"
	"estepage_storefront/pkg/utils/jwt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	localAuth = "auth"

	// SessionCookie carries the session token for browsers that do not send
	// an Authorization header.
	SessionCookie = "token"
)

func bearerToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return c.Cookies(SessionCookie)
}

// Session resolves the visitor's AuthContext. A missing or invalid token
// means an anonymous visitor, never an error.
func Session(signer *jwt.Signer, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := model.Anonymous()
		if token := bearerToken(c); token != "" {
			claims, err := signer.ValidateToken(token)
			if err != nil {
				log.Debug("Ignoring session token", zap.Error(err))
			} else {
				auth = model.AuthContext{
					IsAuthenticated: true,
					User: &model.SessionUser{
						ID:          claims.UserID,
						Fullname:    claims.Fullname,
						Email:       claims.Email,
						PhoneNumber: claims.PhoneNumber,
					},
					Token: token,
				}
			}
		}
		c.Locals(localAuth, auth)
		return c.Next()
	}
}

// Auth returns the AuthContext set by Session.
func Auth(c *fiber.Ctx) model.AuthContext {
	if auth, ok := c.Locals(localAuth).(model.AuthContext); ok {
		return auth
	}
	return model.Anonymous()
}
