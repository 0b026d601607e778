// Package cart holds the shopping-cart state model: per-item quantity and
// customization notes, with derived totals against a catalog.
//
// A Cart is a plain value container. It does no I/O; remote sync and
// rollback live in the application layer, which snapshots a Cart with Clone
// before mutating and puts the snapshot back with Restore on failure.
package cart

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Line is one catalog item's in-cart quantity and notes
type Line struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// PriceLookup resolves the current catalog price of an item
type PriceLookup interface {
	PriceOf(itemID string) (decimal.Decimal, bool)
}

// Cart maps item IDs to lines. A key is present only while its quantity is
// positive.
type Cart struct {
	lines map[string]Line
}

// New returns an empty cart
func New() *Cart {
	return &Cart{lines: make(map[string]Line)}
}

// FromLines builds a cart from lines, dropping non-positive quantities.
// Later lines for the same item overwrite earlier ones.
func FromLines(lines []Line) *Cart {
	c := New()
	for _, l := range lines {
		if l.ItemID == "" || l.Quantity <= 0 {
			continue
		}
		c.lines[l.ItemID] = l
	}
	return c
}

func (c *Cart) ensure() {
	if c.lines == nil {
		c.lines = make(map[string]Line)
	}
}

// Add increments itemID by one. A new line takes notes as given; an existing
// line keeps its notes unless notes is non-empty.
func (c *Cart) Add(itemID, notes string) {
	c.ensure()
	line, ok := c.lines[itemID]
	if !ok {
		c.lines[itemID] = Line{ItemID: itemID, Quantity: 1, Notes: notes}
		return
	}
	line.Quantity++
	if notes != "" {
		line.Notes = notes
	}
	c.lines[itemID] = line
}

// Remove decrements itemID by one and deletes the line when it reaches
// zero. It reports false, changing nothing, when the item is absent.
func (c *Cart) Remove(itemID string) bool {
	line, ok := c.lines[itemID]
	if !ok || line.Quantity <= 0 {
		return false
	}
	line.Quantity--
	if line.Quantity <= 0 {
		delete(c.lines, itemID)
		return true
	}
	c.lines[itemID] = line
	return true
}

// Delete drops the whole line for itemID. It reports whether a line existed.
func (c *Cart) Delete(itemID string) bool {
	if _, ok := c.lines[itemID]; !ok {
		return false
	}
	delete(c.lines, itemID)
	return true
}

// UpdateNotes replaces the notes of an existing line. Missing items are left
// alone and false is returned.
func (c *Cart) UpdateNotes(itemID, notes string) bool {
	line, ok := c.lines[itemID]
	if !ok {
		return false
	}
	line.Notes = notes
	c.lines[itemID] = line
	return true
}

// Quantity returns the quantity of itemID, 0 when absent
func (c *Cart) Quantity(itemID string) int {
	return c.lines[itemID].Quantity
}

// Notes returns the notes of itemID, "" when absent
func (c *Cart) Notes(itemID string) string {
	return c.lines[itemID].Notes
}

// Has reports whether itemID has a line
func (c *Cart) Has(itemID string) bool {
	_, ok := c.lines[itemID]
	return ok
}

// Line returns the line for itemID
func (c *Cart) Line(itemID string) (Line, bool) {
	l, ok := c.lines[itemID]
	return l, ok
}

// TotalAmount sums price × quantity. Items the lookup does not know
// contribute zero.
func (c *Cart) TotalAmount(prices PriceLookup) decimal.Decimal {
	total := decimal.Zero
	if prices == nil {
		return total
	}
	for id, l := range c.lines {
		if l.Quantity <= 0 {
			continue
		}
		price, ok := prices.PriceOf(id)
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// TotalItems sums quantities across all lines
func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Len returns the number of distinct items
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear removes every line
func (c *Cart) Clear() {
	c.lines = make(map[string]Line)
}

// Replace discards the current contents and loads lines, the same way
// FromLines does.
func (c *Cart) Replace(lines []Line) {
	c.lines = FromLines(lines).lines
}

// Lines returns all lines ordered by item ID
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// Clone returns an independent copy
func (c *Cart) Clone() *Cart {
	cp := &Cart{lines: make(map[string]Line, len(c.lines))}
	for k, v := range c.lines {
		cp.lines[k] = v
	}
	return cp
}

// Restore makes c an exact copy of snapshot
func (c *Cart) Restore(snapshot *Cart) {
	c.lines = snapshot.Clone().lines
}

// Equal reports whether both carts hold identical lines
func (c *Cart) Equal(other *Cart) bool {
	if len(c.lines) != len(other.lines) {
		return false
	}
	for k, v := range c.lines {
		if ov, ok := other.lines[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
