package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/radheymart/storefront-backend/internal/auth"
	"github.com/radheymart/storefront-backend/internal/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/orders/checkout", h.checkout)
	app.Get("/api/orders", h.listOrders)
}

// checkout takes no body; the caller is whoever the token says.
func (h *Handler) checkout(c *fiber.Ctx) error {
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}

	ord, _, err := h.service.Checkout(c.Context(), claims.UserID)
	if err != nil {
		if err == ErrEmptyCart {
			return response.Error(c, fiber.StatusBadRequest, "Cart is empty")
		}
		return response.Error(c, fiber.StatusInternalServerError, "Checkout failed")
	}

	return response.Success(c, fiber.StatusCreated, "Order confirmed", fiber.Map{
		"orderId": ord.ID,
		"total":   ord.Total,
	})
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}

	orders, err := h.service.ListByUser(claims.UserID)
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return response.Success(c, fiber.StatusOK, "Success", orders)
}
