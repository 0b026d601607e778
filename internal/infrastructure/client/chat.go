package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/canteen/client/internal/domain/recommend"
)

// ChatGateway is the assistant chat service
type ChatGateway struct {
	c *Client
}

// NewChatGateway creates a gateway on the chat client
func NewChatGateway(c *Client) *ChatGateway {
	return &ChatGateway{c: c}
}

type chatRequest struct {
	History    []recommend.Turn `json:"history"`
	NewMessage string           `json:"new_message"`
}

type chatResponse struct {
	Response string           `json:"response"`
	Reply    string           `json:"reply"`
	Message  string           `json:"message"`
	History  []recommend.Turn `json:"history"`
}

type chatError struct {
	Message string            `json:"message"`
	Detail  []json.RawMessage `json:"detail"`
}

// Send posts one user turn and returns the assistant's reply
func (g *ChatGateway) Send(ctx context.Context, req *recommend.ChatRequest) (*recommend.ChatReply, error) {
	history := req.History
	if history == nil {
		history = []recommend.Turn{}
	}
	resp, err := g.c.Post(ctx, "/chat/chat", chatRequest{History: history, NewMessage: req.NewMessage}, nil)
	if err != nil {
		return nil, &APIError{Message: "Unable to connect to chat service. Please check your internet connection."}
	}
	if !resp.OK() {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: chatErrorMessage(resp)}
	}
	var body chatResponse
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	return &recommend.ChatReply{
		Reply:   firstNonEmpty(body.Response, body.Reply, body.Message),
		History: body.History,
	}, nil
}

// Status reports whether the chat service answers its root route
func (g *ChatGateway) Status(ctx context.Context) (bool, error) {
	resp, err := g.c.Get(ctx, "/chat/", nil, nil)
	if err != nil {
		return false, err
	}
	return resp.OK(), nil
}

// chatErrorMessage turns a failed chat answer into a message for the user
func chatErrorMessage(resp *Response) string {
	var body chatError
	_ = json.Unmarshal(resp.Body, &body)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		if body.Message != "" {
			return body.Message
		}
		return "Invalid request. Please check your message."
	case http.StatusNotFound:
		return "Chat endpoint not found."
	case http.StatusMethodNotAllowed:
		return "Method not allowed. Please check the API endpoint."
	case http.StatusUnprocessableEntity:
		var msgs []string
		for _, raw := range body.Detail {
			var d struct {
				Msg string `json:"msg"`
			}
			if json.Unmarshal(raw, &d) == nil && d.Msg != "" {
				msgs = append(msgs, d.Msg)
			}
		}
		if len(msgs) > 0 {
			return "Validation error: " + strings.Join(msgs, ", ")
		}
		if body.Message != "" {
			return body.Message
		}
		return "Invalid request format. Please check your input."
	case http.StatusInternalServerError:
		return "Internal server error. Please try again later."
	case http.StatusBadGateway:
		return "Chat service is temporarily unavailable. Please try again later."
	case http.StatusServiceUnavailable:
		return "Chat service is currently under maintenance."
	}
	if body.Message != "" {
		return body.Message
	}
	return fmt.Sprintf("Server error (%d). Please try again.", resp.StatusCode)
}
