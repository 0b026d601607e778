package handler

import (
	"net/http"

	orderapp "github.com/canteen/client/internal/application/order"
	"github.com/canteen/client/internal/domain/order"
	"github.com/canteen/client/internal/interfaces/http/dto"
	"github.com/canteen/client/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// OrderHandler places and lists the customer's orders
type OrderHandler struct {
	BaseHandler
	placement *orderapp.PlacementService
	history   *orderapp.HistoryService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(placement *orderapp.PlacementService, history *orderapp.HistoryService) *OrderHandler {
	return &OrderHandler{
		placement: placement,
		history:   history,
	}
}

// Place godoc
// @Summary      Place the cart as an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body PlaceOrderRequest true "Checkout form"
// @Success      201 {object} dto.Response{data=PlaceOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	res, err := h.placement.Place(c.Request.Context(), orderapp.PlaceOrderRequest{
		TableNumber:   req.TableNumber,
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp := PlaceOrderResponse{
		Order:         toOrderResponse(*res.Order),
		GrandTotal:    res.Summary.GrandTotal,
		Complementary: res.Complementary,
	}
	msg := "Order placed successfully"
	if res.Complementary {
		msg = orderapp.MsgComplementary
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponseWithMessage(resp, msg))
}

// Eligibility reports whether the next order earns the free item
func (h *OrderHandler) Eligibility(c *gin.Context) {
	h.Success(c, gin.H{"complementary": h.placement.Eligible(c.Request.Context())})
}

// List returns the customer's orders, newest first
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.history.MyOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponses(orders))
}

// Get returns one order for the tracking screen
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.history.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(*o))
}
