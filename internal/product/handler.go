package product

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

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products", h.listProducts)
	app.Get("/api/products/:id<[0-9]+>", h.getProduct)
}

// RegisterProtectedRoutes registers the admin-only catalog management
// routes. The static /mine route must come before the :id param routes.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/products/mine", auth.RequireAdmin, h.myProducts)
	app.Post("/api/products", auth.RequireAdmin, h.createProduct)
	app.Put("/api/products/:id<[0-9]+>", auth.RequireAdmin, h.updateProduct)
	app.Delete("/api/products/:id<[0-9]+>", auth.RequireAdmin, h.deleteProduct)
}

type productRequest struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	ImageURL    *string  `json:"image_url"`
	Description *string  `json:"description"`
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if payload.Name == "" || payload.Price == nil || payload.Category == "" {
		return response.Error(c, fiber.StatusBadRequest, "name, price, and category are required")
	}
	if *payload.Price < 0 {
		return response.Error(c, fiber.StatusBadRequest, "price must be a positive number")
	}

	created, err := h.service.Create(Product{
		Name:        payload.Name,
		Price:       *payload.Price,
		Category:    payload.Category,
		ImageURL:    payload.ImageURL,
		Description: payload.Description,
		CreatedBy:   claims.UserID,
	})
	if err != nil {
		if err == ErrValidation {
			return response.Error(c, fiber.StatusBadRequest, "name, price, and category are required")
		}
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return response.Success(c, fiber.StatusCreated, "Product created", created)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	result, err := h.service.List(ListParams{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return response.Success(c, fiber.StatusOK, "Success", result)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid product id")
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return response.Error(c, fiber.StatusNotFound, "Product not found")
		}
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return response.Success(c, fiber.StatusOK, "Success", p)
}

func (h *Handler) myProducts(c *fiber.Ctx) error {
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}

	products, err := h.service.ListMine(claims.UserID)
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return response.Success(c, fiber.StatusOK, "Success", products)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid product id")
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if payload.Name == "" || payload.Price == nil || payload.Category == "" {
		return response.Error(c, fiber.StatusBadRequest, "name, price, and category are required")
	}
	if *payload.Price < 0 {
		return response.Error(c, fiber.StatusBadRequest, "price must be a positive number")
	}

	updated, err := h.service.Update(id, claims.UserID, Product{
		Name:        payload.Name,
		Price:       *payload.Price,
		Category:    payload.Category,
		ImageURL:    payload.ImageURL,
		Description: payload.Description,
	})
	if err != nil {
		switch err {
		case ErrValidation:
			return response.Error(c, fiber.StatusBadRequest, "name, price, and category are required")
		case ErrNotOwner:
			return response.Error(c, fiber.StatusForbidden,
				"Not allowed: you can update only your own products (or product not found)")
		default:
			return response.Error(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return response.Success(c, fiber.StatusOK, "Product updated", updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	claims, err := auth.ClaimsFromCtx(c)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "Invalid token")
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.service.Delete(id, claims.UserID); err != nil {
		if err == ErrNotOwner {
			return response.Error(c, fiber.StatusForbidden,
				"Not allowed: you can delete only your own products (or product not found)")
		}
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return response.Success(c, fiber.StatusOK, "Product deleted", nil)
}
