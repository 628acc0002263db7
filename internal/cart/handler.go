package cart

import (
	"strconv"

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
	app.Post("/api/cart/add", h.addToCart)
	app.Get("/api/cart/:userId<[0-9]+>", h.getCart)
	app.Patch("/api/cart/item/:id<[0-9]+>", h.updateItem)
	app.Delete("/api/cart/item/:id<[0-9]+>", h.removeItem)
	app.Delete("/api/cart/clear/:userId<[0-9]+>", h.clearCart)
}

type addRequest struct {
	UserID    int `json:"user_id"`
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}

	payload := addRequest{Quantity: 1}
	if err := c.BodyParser(&payload); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if payload.UserID == 0 || payload.ProductID == 0 {
		return response.Error(c, fiber.StatusBadRequest, "user_id and product_id are required")
	}
	if !claims.IsAdmin() && claims.UserID != payload.UserID {
		return response.Error(c, fiber.StatusForbidden, "Not allowed")
	}

	item, err := h.service.Add(payload.UserID, payload.ProductID, payload.Quantity)
	if err != nil {
		switch err {
		case ErrInvalidQuantity:
			return response.Error(c, fiber.StatusBadRequest, "quantity must be at least 1")
		case ErrProductNotFound:
			return response.Error(c, fiber.StatusNotFound, "Product not found")
		default:
			return response.Error(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return response.Success(c, fiber.StatusCreated, "Added to cart", item)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid user id")
	}
	if !claims.IsAdmin() && claims.UserID != userID {
		return response.Error(c, fiber.StatusForbidden, "Not allowed")
	}

	view, err := h.service.Get(userID)
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return response.Success(c, fiber.StatusOK, "Success", view)
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}
	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}

	item, err := h.service.UpdateItem(itemID, claims.UserID, payload.Quantity)
	if err != nil {
		switch err {
		case ErrInvalidQuantity:
			return response.Error(c, fiber.StatusBadRequest, "quantity must be at least 1")
		case ErrItemNotFound:
			return response.Error(c, fiber.StatusNotFound, "Cart item not found")
		default:
			return response.Error(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return response.Success(c, fiber.StatusOK, "Cart item updated", item)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}
	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.service.RemoveItem(itemID, claims.UserID); err != nil {
		if err == ErrItemNotFound {
			return response.Error(c, fiber.StatusNotFound, "Cart item not found")
		}
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return response.Success(c, fiber.StatusOK, "Item removed from cart", nil)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid user id")
	}
	if !claims.IsAdmin() && claims.UserID != userID {
		return response.Error(c, fiber.StatusForbidden, "Not allowed")
	}

	if err := h.service.Clear(userID); err != nil {
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return response.Success(c, fiber.StatusOK, "Cart cleared", nil)
}
