package api

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"dashboard-service/internal/render"
	"dashboard-service/internal/service"
)

// CartHandler drives the shopping cart from the menu section's forms.
type CartHandler struct {
	cart *service.CartService
}

// NewCartHandler creates a new instance of CartHandler.
func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

const menuSection = "/sections/menu"

// Add puts the staged quantity of a product into the cart --> /cart/items
func (h *CartHandler) Add(c echo.Context) error {
	productID, err := strconv.Atoi(c.FormValue("producto_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product"})
	}
	price, err := decimal.NewFromString(c.FormValue("precio"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid price"})
	}

	err = h.cart.Add(c.Request().Context(), productID, c.FormValue("nombre"), price, c.FormValue("descripcion"))
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return redirectBack(c, menuSection)
}

// StageIncrease bumps a card's pre-add quantity --> /cart/stage/:id/increase
func (h *CartHandler) StageIncrease(c echo.Context) error {
	return h.stage(c, 1)
}

// StageDecrease lowers a card's pre-add quantity --> /cart/stage/:id/decrease
func (h *CartHandler) StageDecrease(c echo.Context) error {
	return h.stage(c, -1)
}

func (h *CartHandler) stage(c echo.Context, delta int) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}
	if _, err := h.cart.StageQuantity(c.Request().Context(), productID, delta); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return redirectBack(c, menuSection)
}

// Increase bumps a cart line's quantity --> /cart/items/:id/increase
func (h *CartHandler) Increase(c echo.Context) error {
	return h.adjust(c, h.cart.Increase)
}

// Decrease lowers a cart line's quantity --> /cart/items/:id/decrease
func (h *CartHandler) Decrease(c echo.Context) error {
	return h.adjust(c, h.cart.Decrease)
}

// Remove drops a cart line --> /cart/items/:id/remove
func (h *CartHandler) Remove(c echo.Context) error {
	return h.adjust(c, h.cart.Remove)
}

func (h *CartHandler) adjust(c echo.Context, op func(ctx context.Context, productID int) error) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}
	if err := op(c.Request().Context(), productID); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return redirectBack(c, menuSection)
}

// Partial re-renders the cart panel --> /partials/cart
func (h *CartHandler) Partial(c echo.Context) error {
	view, err := h.cart.View(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.HTML(200, string(render.Cart(view)))
}

// Checkout records one sale per line and clears the cart --> /cart/checkout
func (h *CartHandler) Checkout(c echo.Context) error {
	clienteID, _ := strconv.Atoi(c.FormValue("cliente_id"))
	if err := h.cart.Checkout(c.Request().Context(), clienteID); err != nil {
		// the failure notification is already on the stack; the cart
		// stays intact for retry
		return redirectBack(c, menuSection)
	}
	return c.Redirect(303, "/sections/ventas")
}
