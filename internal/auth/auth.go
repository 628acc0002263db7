package auth

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/radheymart/storefront-backend/internal/response"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	// tokenTTL is how long an issued token stays valid. A role change only
	// takes effect once the user logs in again and gets a fresh token; the
	// gate trusts the signed claims and never re-queries the database.
	tokenTTL = 7 * 24 * time.Hour
)

// Claims is the identity carried by a verified bearer token.
type Claims struct {
	UserID int
	Email  string
	Role   string
}

func (cl Claims) IsAdmin() bool {
	return cl.Role == RoleAdmin
}

// Auth issues and verifies the signed tokens that gate mutating endpoints.
type Auth struct {
	secret []byte
}

func New(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// IssueToken signs an HS256 token carrying the user's id, email and role.
func (a *Auth) IssueToken(userID int, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Protected returns the middleware that parses the bearer token and stores
// it under c.Locals("user"). Missing, malformed, expired or badly signed
// tokens are rejected with 401 before the handler runs.
func (a *Auth) Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: a.secret,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
		},
	})
}

// RequireAdmin rejects requests whose verified token carries a role below
// admin. It must run after Protected.
func RequireAdmin(c *fiber.Ctx) error {
	claims, err := ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}
	if !claims.IsAdmin() {
		return response.Error(c, fiber.StatusForbidden, "Admin only")
	}
	return c.Next()
}

// ClaimsFromCtx reads the identity parsed by the Protected middleware.
func ClaimsFromCtx(c *fiber.Ctx) (Claims, error) {
	u := c.Locals("user")
	if u == nil {
		return Claims{}, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return Claims{}, fiber.ErrUnauthorized
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fiber.ErrUnauthorized
	}

	var out Claims
	switch v := mc["user_id"].(type) {
	case float64:
		out.UserID = int(v)
	case int:
		out.UserID = v
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return Claims{}, fiber.ErrUnauthorized
		}
		out.UserID = id
	default:
		return Claims{}, fiber.ErrUnauthorized
	}

	if email, ok := mc["email"].(string); ok {
		out.Email = email
	}
	if role, ok := mc["role"].(string); ok {
		out.Role = role
	}
	return out, nil
}
