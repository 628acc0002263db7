package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeProtectedApp(a *Auth) *fiber.App {
	app := fiber.New()
	app.Use(a.Protected())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		claims, err := ClaimsFromCtx(c)
		if err != nil {
			return err
		}
		return c.JSON(claims)
	})
	app.Get("/admin", RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestProtected_ValidToken(t *testing.T) {
	a := New("test-secret")
	app := makeProtectedApp(a)

	token, err := a.IssueToken(7, "asha@example.com", RoleUser)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}

func TestProtected_MissingToken(t *testing.T) {
	app := makeProtectedApp(New("test-secret"))

	res, _ := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestProtected_WrongSignature(t *testing.T) {
	a := New("test-secret")
	other := New("other-secret")
	app := makeProtectedApp(a)

	token, err := other.IssueToken(7, "asha@example.com", RoleUser)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestProtected_ExpiredToken(t *testing.T) {
	a := New("test-secret")
	app := makeProtectedApp(a)

	claims := jwt.MapClaims{
		"user_id": 7,
		"email":   "asha@example.com",
		"role":    RoleUser,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestRequireAdmin(t *testing.T) {
	a := New("test-secret")
	app := makeProtectedApp(a)

	userToken, _ := a.IssueToken(7, "asha@example.com", RoleUser)
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for role user, got %d", res.StatusCode)
	}

	adminToken, _ := a.IssueToken(1, "root@example.com", RoleAdmin)
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", res.StatusCode)
	}
}

func TestClaimsRoundTrip(t *testing.T) {
	a := New("test-secret")

	token, err := a.IssueToken(42, "root@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse failed: %v", err)
	}

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("user", parsed)
		claims, err := ClaimsFromCtx(c)
		if err != nil {
			t.Errorf("claims failed: %v", err)
			return err
		}
		if claims.UserID != 42 || claims.Email != "root@example.com" || !claims.IsAdmin() {
			t.Errorf("unexpected claims: %+v", claims)
		}
		return c.SendStatus(fiber.StatusOK)
	})
	res, _ := app.Test(httptest.NewRequest("GET", "/", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}
