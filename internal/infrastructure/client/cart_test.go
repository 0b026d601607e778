package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/canteen/client/internal/domain/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartGateway_Mutations(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		assert.Equal(t, "tok", r.Header.Get("token"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	g := NewCartGateway(c)
	ctx := context.Background()

	require.NoError(t, g.Add(ctx, "tok", "1"))
	require.NoError(t, g.Remove(ctx, "tok", "1"))
	require.NoError(t, g.Delete(ctx, "tok", "1"))
	require.NoError(t, g.Clear(ctx, "tok"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/api/cart/add", "/api/cart/remove", "/api/cart/delete", "/api/cart/clear"}, paths)
}

func TestCartGateway_FailureEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Error"})
	})
	err := NewCartGateway(c).Add(context.Background(), "tok", "1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Error", apiErr.Message)
}

func TestCartGateway_Fetch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cart/get", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"success":true,"cartData":{"2":3,"5":{"quantity":1,"notes":"no onion"},"9":0,"11":{"quantity":0}}}`))
	})

	lines, err := NewCartGateway(c).Fetch(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, []cart.Line{
		{ItemID: "2", Quantity: 3},
		{ItemID: "5", Quantity: 1, Notes: "no onion"},
	}, lines)
}

func TestCartGateway_FetchErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Not Authorized Login Again"})
	})
	_, err := NewCartGateway(c).Fetch(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Authorized")
}

func TestDecodeCartData_Invalid(t *testing.T) {
	_, err := DecodeCartData(map[string]json.RawMessage{"1": json.RawMessage(`"three"`)})
	assert.Error(t, err)

	lines, err := DecodeCartData(nil)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDecodeCartData_LegacyQuantities(t *testing.T) {
	for _, raw := range []string{`1.5`, `1e30`, `-1e30`} {
		_, err := DecodeCartData(map[string]json.RawMessage{"1": json.RawMessage(raw)})
		assert.Error(t, err, raw)
	}

	lines, err := DecodeCartData(map[string]json.RawMessage{
		"1": json.RawMessage(`2.0`),
		"2": json.RawMessage(`1e1`),
	})
	require.NoError(t, err)
	assert.Equal(t, []cart.Line{{ItemID: "1", Quantity: 2}, {ItemID: "2", Quantity: 10}}, lines)
}
