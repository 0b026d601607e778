package handler

import (
	"time"

	"github.com/canteen/client/internal/domain/recommend"
)

// SuggestionResponse is a recommended dish, with its menu entry when it is
// on today's menu
type SuggestionResponse struct {
	Name       string        `json:"name"`
	OrderCount int           `json:"orderCount,omitempty"`
	Food       *FoodResponse `json:"food,omitempty"`
	Available  bool          `json:"available"`
}

// ChatRequest is one message typed by the user
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

// ChatMessageResponse is one chat bubble
type ChatMessageResponse struct {
	Speaker   string    `json:"speaker"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func toSuggestionResponses(items []recommend.Suggestion) []SuggestionResponse {
	out := make([]SuggestionResponse, 0, len(items))
	for _, s := range items {
		resp := SuggestionResponse{
			Name:       s.Name,
			OrderCount: s.OrderCount,
			Available:  s.Available(),
		}
		if s.Food != nil {
			f := toFoodResponse(*s.Food)
			resp.Food = &f
		}
		out = append(out, resp)
	}
	return out
}

func toChatMessageResponses(msgs []recommend.Message) []ChatMessageResponse {
	out := make([]ChatMessageResponse, len(msgs))
	for i, m := range msgs {
		out[i] = ChatMessageResponse{
			Speaker:   string(m.Speaker),
			Content:   m.Content,
			Timestamp: m.Timestamp,
		}
	}
	return out
}
