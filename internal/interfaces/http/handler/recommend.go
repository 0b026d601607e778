package handler

import (
	"strconv"

	recommendapp "github.com/canteen/client/internal/application/recommend"
	"github.com/canteen/client/internal/domain/recommend"
	"github.com/canteen/client/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// RecommendHandler serves popular and similar items and the chat assistant
type RecommendHandler struct {
	BaseHandler
	recommendService *recommendapp.Service
	chatService      *recommendapp.ChatService
}

// NewRecommendHandler creates a new RecommendHandler
func NewRecommendHandler(recommendService *recommendapp.Service, chatService *recommendapp.ChatService) *RecommendHandler {
	return &RecommendHandler{
		recommendService: recommendService,
		chatService:      chatService,
	}
}

func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Popular godoc
// @Summary      Most ordered items
// @Tags         recommendations
// @Produce      json
// @Param        limit query int false "Number of items" default(5)
// @Param        window_days query int false "Lookback in days"
// @Success      200 {object} dto.Response{data=[]SuggestionResponse}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /recommendations/popular [get]
func (h *RecommendHandler) Popular(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		h.BadRequest(c, "limit must be a number")
		return
	}
	window, ok := queryInt(c, "window_days")
	if !ok {
		h.BadRequest(c, "window_days must be a number")
		return
	}
	items, err := h.recommendService.Popular(c.Request.Context(), recommend.PopularQuery{Limit: limit, WindowDays: window})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSuggestionResponses(items))
}

// Similar returns items often ordered together with item_name
func (h *RecommendHandler) Similar(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		h.BadRequest(c, "limit must be a number")
		return
	}
	items, err := h.recommendService.Similar(c.Request.Context(), recommend.SimilarQuery{
		ItemName: c.Query("item_name"),
		Limit:    limit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSuggestionResponses(items))
}

// Chat sends one message to the assistant and returns its reply
func (h *RecommendHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	msg, err := h.chatService.Send(c.Request.Context(), req.Message)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toChatMessageResponses([]recommend.Message{msg})[0])
}

// Transcript returns the conversation so far
func (h *RecommendHandler) Transcript(c *gin.Context) {
	h.Success(c, toChatMessageResponses(h.chatService.Messages()))
}

// ResetChat starts a new conversation
func (h *RecommendHandler) ResetChat(c *gin.Context) {
	h.chatService.Reset()
	h.Success(c, toChatMessageResponses(h.chatService.Messages()))
}

// ChatStatus reports whether the assistant is reachable
func (h *RecommendHandler) ChatStatus(c *gin.Context) {
	h.Success(c, gin.H{"available": h.chatService.Available(c.Request.Context())})
}
