package handler

import (
	orderapp "github.com/canteen/client/internal/application/order"
	"github.com/canteen/client/internal/domain/order"
	"github.com/canteen/client/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the order board, kitchen display and analytics
type AdminHandler struct {
	BaseHandler
	board *orderapp.BoardService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(board *orderapp.BoardService) *AdminHandler {
	return &AdminHandler{board: board}
}

// Board godoc
// @Summary      Order board tab
// @Tags         admin
// @Produce      json
// @Param        filter query string false "all, pending, accepted, preparing or ready"
// @Param        refresh query bool false "Reload from the backend first"
// @Success      200 {object} dto.Response{data=BoardResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/board [get]
func (h *AdminHandler) Board(c *gin.Context) {
	filter, ok := order.ParseFilter(c.Query("filter"))
	if !ok {
		h.BadRequest(c, "Unknown filter: "+c.Query("filter"))
		return
	}
	if c.Query("refresh") != "false" {
		if _, err := h.board.Refresh(c.Request.Context()); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	view := h.board.View(filter)
	counts := make(map[string]int, len(view.Counts))
	for f, n := range view.Counts {
		counts[string(f)] = n
	}
	h.Success(c, BoardResponse{
		Filter: string(view.Filter),
		Counts: counts,
		Orders: toOrderResponses(view.Orders),
	})
}

// Advance moves an order one board step
func (h *AdminHandler) Advance(c *gin.Context) {
	id := c.Param("id")
	next, err := h.board.Advance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, AdvanceResponse{OrderID: id, Status: next.String()}, "Order status updated")
}

// Kitchen returns the kitchen display queue
func (h *AdminHandler) Kitchen(c *gin.Context) {
	orders, err := h.board.Kitchen(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponses(orders))
}

// SetKitchenStatus sets an order status from the kitchen display
func (h *AdminHandler) SetKitchenStatus(c *gin.Context) {
	var req KitchenStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	id := c.Param("id")
	status := order.ParseStatus(req.Status)
	if err := h.board.SetKitchenStatus(c.Request.Context(), id, status); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, AdvanceResponse{OrderID: id, Status: status.String()})
}

// Analytics passes through the backend's order summary
func (h *AdminHandler) Analytics(c *gin.Context) {
	stats, err := h.board.Analytics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
