package user

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/radheymart/storefront-backend/internal/auth"
	"github.com/radheymart/storefront-backend/internal/response"
)

type Handler struct {
	service     *Service
	auth        *auth.Auth
	adminSecret string
}

func NewHandler(service *Service, a *auth.Auth, adminSecret string) *Handler {
	return &Handler{service: service, auth: a, adminSecret: adminSecret}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/users/register", h.register)
	app.Post("/api/users/login", h.login)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/users", auth.RequireAdmin, h.listUsers)
	app.Get("/api/users/:id", h.getUser)
	app.Put("/api/users/:id", h.updateUser)
	app.Patch("/api/users/:id", h.patchUser)
	app.Delete("/api/users/:id", h.deleteUser)
}

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	AdminSecret string `json:"adminSecret"`
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		return response.Error(c, fiber.StatusBadRequest, "name, email, and password are required")
	}
	if len(payload.Password) < 6 {
		return response.Error(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
	}

	// Registering as admin requires the shared secret from server config.
	role := auth.RoleUser
	if payload.Role == auth.RoleAdmin {
		if h.adminSecret == "" || payload.AdminSecret != h.adminSecret {
			return response.Error(c, fiber.StatusForbidden, "Invalid admin secret")
		}
		role = auth.RoleAdmin
	}

	created, err := h.service.Register(User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     role,
	})
	if err != nil {
		if err == ErrEmailExists {
			return response.Error(c, fiber.StatusConflict, "Email already registered")
		}
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	token, err := h.auth.IssueToken(created.ID, created.Email, created.Role)
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "failed to generate token")
	}

	return response.Success(c, fiber.StatusCreated, "Registered successfully", fiber.Map{
		"user":  created,
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if payload.Email == "" || payload.Password == "" {
		return response.Error(c, fiber.StatusBadRequest, "email and password are required")
	}

	u, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.auth.IssueToken(u.ID, u.Email, u.Role)
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "failed to generate token")
	}

	return response.Success(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":  u,
		"token": token,
	})
}

func (h *Handler) listUsers(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, sanitize(u))
	}
	return response.Success(c, fiber.StatusOK, "Success", out)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid user id")
	}
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}
	if !claims.IsAdmin() && claims.UserID != id {
		return response.Error(c, fiber.StatusForbidden, "Not allowed")
	}

	u, err := h.service.GetByID(id)
	if err != nil {
		return response.Error(c, fiber.StatusNotFound, "User not found")
	}
	return response.Success(c, fiber.StatusOK, "Success", sanitize(u))
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid user id")
	}
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}
	if !claims.IsAdmin() && claims.UserID != id {
		return response.Error(c, fiber.StatusForbidden, "Not allowed")
	}

	payload := new(updateUserRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if payload.Name == "" || payload.Email == "" {
		return response.Error(c, fiber.StatusBadRequest, "name and email are required")
	}
	if payload.Password != "" && len(payload.Password) < 6 {
		return response.Error(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
	}

	updated, err := h.service.Update(id, User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		if err == ErrNotFound {
			return response.Error(c, fiber.StatusNotFound, "User not found")
		}
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return response.Success(c, fiber.StatusOK, "User updated", updated)
}

type patchUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (h *Handler) patchUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid user id")
	}
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}
	if !claims.IsAdmin() && claims.UserID != id {
		return response.Error(c, fiber.StatusForbidden, "Not allowed")
	}

	payload := new(patchUserRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if payload.Name == nil && payload.Email == nil && payload.Password == nil {
		return response.Error(c, fiber.StatusBadRequest, "No fields to update")
	}

	existing, err := h.service.GetByID(id)
	if err != nil {
		return response.Error(c, fiber.StatusNotFound, "User not found")
	}

	upd := User{Name: existing.Name, Email: existing.Email}
	if payload.Name != nil {
		upd.Name = *payload.Name
	}
	if payload.Email != nil {
		upd.Email = *payload.Email
	}
	if payload.Password != nil {
		if len(*payload.Password) < 6 {
			return response.Error(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
		}
		upd.Password = *payload.Password
	}

	patched, err := h.service.Update(id, upd)
	if err != nil {
		if err == ErrNotFound {
			return response.Error(c, fiber.StatusNotFound, "User not found")
		}
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return response.Success(c, fiber.StatusOK, "User patched", patched)
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid user id")
	}
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}
	if !claims.IsAdmin() && claims.UserID != id {
		return response.Error(c, fiber.StatusForbidden, "Not allowed")
	}

	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return response.Error(c, fiber.StatusNotFound, "User not found")
		}
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return response.Success(c, fiber.StatusOK, "User deleted", nil)
}
