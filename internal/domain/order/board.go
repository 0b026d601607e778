package order

import (
	"sort"
	"strings"
)

// Filter selects a tab on the order board
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterAccepted  Filter = "accepted"
	FilterPreparing Filter = "preparing"
	FilterReady     Filter = "ready"
)

// Filters lists board tabs in display order
var Filters = []Filter{FilterAll, FilterPending, FilterAccepted, FilterPreparing, FilterReady}

// ParseFilter converts user input to a Filter, defaulting to all
func ParseFilter(s string) (Filter, bool) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FilterAll, true
	}
	for _, known := range Filters {
		if f == known {
			return f, true
		}
	}
	return FilterAll, false
}

// Matches reports whether an order with status s belongs on tab f
func (f Filter) Matches(s Status) bool {
	if f == FilterAll {
		return true
	}
	return Status(f) == s
}

// Board is the admin view of all orders, newest first
type Board struct {
	orders []Order
}

// NewBoard sorts orders newest first. Orders without a timestamp go last.
func NewBoard(orders []Order) *Board {
	sorted := make([]Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CreatedAt, sorted[j].CreatedAt
		if a.IsZero() != b.IsZero() {
			return !a.IsZero()
		}
		return a.After(b)
	})
	return &Board{orders: sorted}
}

// Orders returns every order on the board
func (b *Board) Orders() []Order {
	out := make([]Order, len(b.orders))
	copy(out, b.orders)
	return out
}

// Len returns the number of orders
func (b *Board) Len() int {
	return len(b.orders)
}

// Filter returns the orders on tab f
func (b *Board) Filter(f Filter) []Order {
	var out []Order
	for _, o := range b.orders {
		if f.Matches(o.Status) {
			out = append(out, o)
		}
	}
	return out
}

// Counts returns the number of orders per tab
func (b *Board) Counts() map[Filter]int {
	counts := make(map[Filter]int, len(Filters))
	for _, f := range Filters {
		counts[f] = 0
	}
	for _, o := range b.orders {
		counts[FilterAll]++
		for _, f := range Filters[1:] {
			if f.Matches(o.Status) {
				counts[f]++
			}
		}
	}
	return counts
}

// Find looks up an order by ID
func (b *Board) Find(id string) (Order, bool) {
	for _, o := range b.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// SetStatus updates one order in place and reports whether it was found
func (b *Board) SetStatus(id string, s Status) bool {
	for i := range b.orders {
		if b.orders[i].ID == id {
			b.orders[i].Status = s
			return true
		}
	}
	return false
}
