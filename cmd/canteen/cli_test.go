package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type placedItem struct {
	FoodID   string `json:"foodId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

type placedOrder struct {
	Items         []placedItem `json:"items"`
	TableNumber   int          `json:"tableNumber"`
	PaymentMethod string       `json:"paymentMethod"`
}

// fakeBackend is a canteen backend whose cart, like the real one, keeps
// quantities only
type fakeBackend struct {
	mu     sync.Mutex
	cart   map[string]int
	orders []placedOrder
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{cart: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("CANTEEN_BACKEND_BASE_URL", srv.URL)
	t.Setenv("CANTEEN_STORE_PATH", filepath.Join(dir, "canteen.db"))
	t.Setenv("CANTEEN_LOG_LEVEL", "error")
	t.Setenv("CANTEEN_LOG_OUTPUT", "stderr")
	return b
}

func (b *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	var item struct {
		ItemID string `json:"itemId"`
	}
	switch r.URL.Path {
	case "/api/food/list":
		_, _ = w.Write([]byte(`[{"_id":"1","name":"Chips","price":20,"category":"Snacks"},{"_id":"2","name":"Samosa","price":15,"category":"Snacks"}]`))
		return
	case "/api/user/login":
		_, _ = w.Write([]byte(`{"success":true,"data":{"accessToken":"tok-1"}}`))
		return
	case "/api/cart/get":
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "cartData": b.cart})
		return
	case "/api/cart/add":
		_ = json.NewDecoder(r.Body).Decode(&item)
		b.cart[item.ItemID]++
	case "/api/cart/remove":
		_ = json.NewDecoder(r.Body).Decode(&item)
		if b.cart[item.ItemID]--; b.cart[item.ItemID] <= 0 {
			delete(b.cart, item.ItemID)
		}
	case "/api/cart/delete":
		_ = json.NewDecoder(r.Body).Decode(&item)
		delete(b.cart, item.ItemID)
	case "/api/cart/clear":
		b.cart = map[string]int{}
	case "/api/order/userorders":
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
		return
	case "/api/order/createOrder":
		var o placedOrder
		_ = json.NewDecoder(r.Body).Decode(&o)
		b.orders = append(b.orders, o)
		b.cart = map[string]int{}
		_, _ = w.Write([]byte(`{"success":true,"data":{"_id":"o1","status":"pending","tableNumber":3}}`))
		return
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Not found"}`))
		return
	}
	_, _ = w.Write([]byte(`{"success":true}`))
}

func (b *fakeBackend) placed() []placedOrder {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]placedOrder(nil), b.orders...)
}

func (b *fakeBackend) cartItems() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]string, 0, len(b.cart))
	for id := range b.cart {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// resetFlags puts every flag back to its default, as a fresh process has them
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI runs one canteen invocation and returns what it printed
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	if current != nil {
		_ = current.Close()
		current = nil
	}
	require.NoError(t, err, "canteen %v: %s", args, errOut.String())
	return out.String()
}

func TestCLI_SignedInNotesReachTheOrder(t *testing.T) {
	backend := newFakeBackend(t)

	assert.Contains(t, runCLI(t, "login", "--email", "asha@campus.edu", "--password", "secret"), "Logged in as user")
	assert.Contains(t, runCLI(t, "cart", "add", "1", "--notes", "extra spicy"), "Chips (extra spicy)")
	assert.Contains(t, runCLI(t, "cart", "show"), "Chips (extra spicy)")

	runCLI(t, "cart", "add", "2")
	runCLI(t, "cart", "notes", "2", "no onion")
	show := runCLI(t, "cart", "show")
	assert.Contains(t, show, "Chips (extra spicy)")
	assert.Contains(t, show, "Samosa (no onion)")

	runCLI(t, "order", "place", "-t", "3")
	orders := backend.placed()
	require.Len(t, orders, 1)
	assert.Equal(t, 3, orders[0].TableNumber)
	assert.ElementsMatch(t, []placedItem{
		{FoodID: "1", Quantity: 1, Notes: "extra spicy"},
		{FoodID: "2", Quantity: 1, Notes: "no onion"},
	}, orders[0].Items)

	// placing the order forgets the notes along with the cart
	runCLI(t, "cart", "add", "1")
	assert.NotContains(t, runCLI(t, "cart", "show"), "extra spicy")
}

func TestCLI_LogoutForgetsNotes(t *testing.T) {
	backend := newFakeBackend(t)

	runCLI(t, "login", "--email", "asha@campus.edu", "--password", "secret")
	runCLI(t, "cart", "add", "1", "--notes", "extra spicy")
	runCLI(t, "logout")
	assert.Contains(t, runCLI(t, "cart", "show"), "Your cart is empty")

	runCLI(t, "login", "--email", "asha@campus.edu", "--password", "secret")
	show := runCLI(t, "cart", "show")
	assert.Contains(t, show, "Chips")
	assert.NotContains(t, show, "extra spicy")
	assert.Equal(t, []string{"1"}, backend.cartItems())
}

func TestCLI_GuestCartPersists(t *testing.T) {
	backend := newFakeBackend(t)

	runCLI(t, "cart", "add", "2", "--notes", "no onion")
	runCLI(t, "cart", "add", "2")
	show := runCLI(t, "cart", "show")
	assert.Contains(t, show, "Samosa (no onion)")
	assert.Contains(t, show, "₹30.00")
	assert.Empty(t, backend.cartItems())
}
