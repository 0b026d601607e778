package recommend

import (
	"context"
	"strings"
	"time"

	"github.com/canteen/client/internal/domain/shared"
)

// Speaker is who wrote a chat message on the client side
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Wire roles used by the chat service
const (
	apiRoleUser  = "user"
	apiRoleModel = "model"
)

// Message is one chat bubble
type Message struct {
	Speaker   Speaker
	Content   string
	Timestamp time.Time
}

// Part is a text fragment of a service-side turn
type Part struct {
	Text string `json:"text"`
}

// Turn is the chat service's history entry
type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// ToTurns converts local messages to service history. Messages from any
// other speaker are dropped.
func ToTurns(messages []Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		var role string
		switch m.Speaker {
		case SpeakerUser:
			role = apiRoleUser
		case SpeakerAssistant:
			role = apiRoleModel
		default:
			continue
		}
		turns = append(turns, Turn{Role: role, Parts: []Part{{Text: m.Content}}})
	}
	return turns
}

// FromTurns converts service history back to local messages stamped now
func FromTurns(turns []Turn, now time.Time) []Message {
	out := make([]Message, 0, len(turns))
	for _, t := range turns {
		speaker := SpeakerUser
		if t.Role == apiRoleModel {
			speaker = SpeakerAssistant
		}
		content := ""
		if len(t.Parts) > 0 {
			content = t.Parts[0].Text
		}
		out = append(out, Message{Speaker: speaker, Content: content, Timestamp: now})
	}
	return out
}

// ChatRequest is one user turn with prior history
type ChatRequest struct {
	History    []Turn
	NewMessage string
}

// NewChatRequest trims and validates the new message
func NewChatRequest(history []Message, text string) (*ChatRequest, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "new_message is required")
	}
	return &ChatRequest{History: ToTurns(history), NewMessage: text}, nil
}

// ChatReply is the assistant's answer
type ChatReply struct {
	Reply   string
	History []Turn
}

// ChatGateway is the remote chat API
type ChatGateway interface {
	Send(ctx context.Context, req *ChatRequest) (*ChatReply, error)
	Status(ctx context.Context) (bool, error)
}
