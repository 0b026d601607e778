package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/canteen/client/internal/domain/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatGateway_Send(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/chat", r.URL.Path)
		var body chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Anything spicy?", body.NewMessage)
		require.Len(t, body.History, 1)
		assert.Equal(t, "model", body.History[0].Role)
		_, _ = w.Write([]byte(`{"response":"Try the Peri Peri Fries","history":[{"role":"user","parts":[{"text":"Anything spicy?"}]}]}`))
	})

	req, err := recommend.NewChatRequest([]recommend.Message{{Speaker: recommend.SpeakerAssistant, Content: "Hi!"}}, "Anything spicy?")
	require.NoError(t, err)

	reply, err := NewChatGateway(c).Send(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Try the Peri Peri Fries", reply.Reply)
	assert.Len(t, reply.History, 1)
}

func TestChatGateway_EmptyHistoryIsArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.JSONEq(t, `[]`, string(raw["history"]))
		_, _ = w.Write([]byte(`{"reply":"ok"}`))
	})

	reply, err := NewChatGateway(c).Send(context.Background(), &recommend.ChatRequest{NewMessage: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Reply)
}

func TestChatErrorMessage(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   string
	}{
		{400, `{"message":"Too long"}`, "Too long"},
		{400, ``, "Invalid request. Please check your message."},
		{404, ``, "Chat endpoint not found."},
		{422, `{"detail":[{"msg":"field required"},{"msg":"too short"}]}`, "Validation error: field required, too short"},
		{422, `{}`, "Invalid request format. Please check your input."},
		{500, ``, "Internal server error. Please try again later."},
		{502, ``, "Chat service is temporarily unavailable. Please try again later."},
		{503, ``, "Chat service is currently under maintenance."},
		{418, ``, "Server error (418). Please try again."},
	}
	for _, tt := range tests {
		got := chatErrorMessage(&Response{StatusCode: tt.status, Body: []byte(tt.body)})
		assert.Equal(t, tt.want, got, "status %d", tt.status)
	}
}

func TestChatGateway_Status(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	ok, err := NewChatGateway(c).Status(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}
