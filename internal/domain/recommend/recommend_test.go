package recommend

import (
	"testing"
	"time"

	"github.com/canteen/client/internal/domain/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopularQuery_Validate(t *testing.T) {
	q := PopularQuery{}
	require.NoError(t, q.Validate())
	assert.Equal(t, DefaultPopularLimit, q.Limit)

	q = PopularQuery{Limit: 3, WindowDays: -1}
	assert.Error(t, q.Validate())
}

func TestSimilarQuery_Validate(t *testing.T) {
	q := SimilarQuery{}
	assert.Error(t, q.Validate())

	q = SimilarQuery{ItemName: "burger"}
	require.NoError(t, q.Validate())
	assert.Equal(t, DefaultSimilarLimit, q.Limit)
}

func TestJoin(t *testing.T) {
	got := Join([]Item{{Name: "Cold Drinks", OrderCount: 9}, {Name: "Sushi"}}, menu.SeedCatalog())
	require.Len(t, got, 2)
	require.True(t, got[0].Available())
	assert.Equal(t, "9", got[0].Food.ID)
	assert.Equal(t, 9, got[0].OrderCount)
	assert.False(t, got[1].Available())
}

func TestTurnConversion(t *testing.T) {
	msgs := []Message{
		{Speaker: SpeakerUser, Content: "what's spicy?"},
		{Speaker: "system", Content: "ignored"},
		{Speaker: SpeakerAssistant, Content: "Peri Peri Fries"},
	}
	turns := ToTurns(msgs)
	assert.Equal(t, []Turn{
		{Role: "user", Parts: []Part{{Text: "what's spicy?"}}},
		{Role: "model", Parts: []Part{{Text: "Peri Peri Fries"}}},
	}, turns)

	now := time.Now()
	back := FromTurns(append(turns, Turn{Role: "model"}), now)
	require.Len(t, back, 3)
	assert.Equal(t, SpeakerAssistant, back[1].Speaker)
	assert.Equal(t, "Peri Peri Fries", back[1].Content)
	assert.Equal(t, "", back[2].Content)
	assert.Equal(t, now, back[0].Timestamp)
}

func TestNewChatRequest(t *testing.T) {
	_, err := NewChatRequest(nil, "   ")
	assert.Error(t, err)

	req, err := NewChatRequest([]Message{{Speaker: SpeakerUser, Content: "hi"}}, "  menu?  ")
	require.NoError(t, err)
	assert.Equal(t, "menu?", req.NewMessage)
	assert.Len(t, req.History, 1)
}
