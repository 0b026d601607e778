package recommend

import (
	"context"
	"sync"
	"time"

	"github.com/canteen/client/internal/domain/recommend"
	"go.uber.org/zap"
)

// Greeting opens every conversation
const Greeting = "Hi! I can suggest something to eat. What are you in the mood for?"

// ChatService keeps one conversation with the canteen assistant
type ChatService struct {
	gateway recommend.ChatGateway
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	messages []recommend.Message
}

// NewChatService creates a conversation that starts with the greeting
func NewChatService(gateway recommend.ChatGateway, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ChatService{gateway: gateway, logger: logger, now: time.Now}
	s.Reset()
	return s
}

// Send posts text with the conversation so far. The user's message stays
// in the transcript even when the service fails; the reply is appended on
// success.
func (s *ChatService) Send(ctx context.Context, text string) (recommend.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := recommend.NewChatRequest(s.history(), text)
	if err != nil {
		return recommend.Message{}, err
	}
	s.messages = append(s.messages, recommend.Message{
		Speaker:   recommend.SpeakerUser,
		Content:   req.NewMessage,
		Timestamp: s.now(),
	})

	reply, err := s.gateway.Send(ctx, req)
	if err != nil {
		s.logger.Warn("chat request failed", zap.Error(err))
		return recommend.Message{}, err
	}
	msg := recommend.Message{
		Speaker:   recommend.SpeakerAssistant,
		Content:   reply.Reply,
		Timestamp: s.now(),
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

// history is the transcript without the local greeting, which the
// service never said
func (s *ChatService) history() []recommend.Message {
	if len(s.messages) > 0 && s.messages[0].Content == Greeting {
		return s.messages[1:]
	}
	return s.messages
}

// Messages returns the transcript
func (s *ChatService) Messages() []recommend.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]recommend.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Reset starts a new conversation
func (s *ChatService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []recommend.Message{{
		Speaker:   recommend.SpeakerAssistant,
		Content:   Greeting,
		Timestamp: s.now(),
	}}
}

// Available reports whether the chat service answers its status check
func (s *ChatService) Available(ctx context.Context) bool {
	ok, err := s.gateway.Status(ctx)
	if err != nil {
		s.logger.Debug("chat status check failed", zap.Error(err))
		return false
	}
	return ok
}
