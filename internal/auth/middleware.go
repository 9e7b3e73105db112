package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/domain"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the verified identity of the caller, reconstructed per request
// from the token payload alone. It is never persisted.
type Principal struct {
	UserID int64
	Role   domain.Role
}

// Middleware validates bearer tokens and stores the Principal in request
// locals. It holds no state beyond the token manager.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
//
// A missing or malformed Authorization header is 401; a header that carries a
// token which fails verification (bad signature or expired) is 403. Existing
// clients depend on that exact split, so it is preserved rather than folded
// into a single status.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewForbidden("invalid or expired token")
	}

	c.Locals(principalKey, &Principal{UserID: claims.UserID, Role: claims.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
