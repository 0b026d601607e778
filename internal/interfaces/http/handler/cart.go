package handler

import (
	cartapp "github.com/canteen/client/internal/application/cart"
	menuapp "github.com/canteen/client/internal/application/menu"
	"github.com/canteen/client/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CartHandler exposes the cart. Every mutation answers with the refreshed
// cart so the UI never has to guess.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
	menuService *menuapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service, menuService *menuapp.Service) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		menuService: menuService,
	}
}

func (h *CartHandler) respond(c *gin.Context, message string) {
	catalog, err := h.menuService.Catalog(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, toCartResponse(h.cartService.Summary(catalog)), message)
}

// Get godoc
// @Summary      Show the cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response{data=CartResponse}
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	h.respond(c, "")
}

// Add godoc
// @Summary      Add one unit of an item
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body AddCartItemRequest true "Item to add"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cart/items [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if err := h.cartService.Add(c.Request.Context(), req.ItemID, req.Notes); err != nil {
		h.HandleError(c, err)
		return
	}
	h.respond(c, cartapp.MsgAdded)
}

// Decrement takes one unit out
func (h *CartHandler) Decrement(c *gin.Context) {
	if err := h.cartService.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.respond(c, cartapp.MsgRemoved)
}

// Delete drops every unit of an item; it needs a signed-in session
func (h *CartHandler) Delete(c *gin.Context) {
	if err := h.cartService.RemoveCompletely(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.respond(c, cartapp.MsgRemoved)
}

// UpdateNotes replaces an item's notes
func (h *CartHandler) UpdateNotes(c *gin.Context) {
	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if !h.cartService.UpdateNotes(c.Request.Context(), c.Param("id"), req.Notes) {
		h.NotFound(c, "Item is not in the cart")
		return
	}
	h.respond(c, "")
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.respond(c, "")
}
