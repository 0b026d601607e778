package menu

import (
	"github.com/shopspring/decimal"
)

// Catalog is an ordered, read-only list of foods indexed by ID.
// A nil *Catalog behaves as an empty catalog.
type Catalog struct {
	items []Food
	index map[string]int
}

// NewCatalog builds a catalog preserving input order. Duplicate IDs keep
// the first occurrence.
func NewCatalog(items []Food) *Catalog {
	c := &Catalog{
		items: make([]Food, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, f := range items {
		if _, dup := c.index[f.ID]; dup {
			continue
		}
		c.index[f.ID] = len(c.items)
		c.items = append(c.items, f)
	}
	return c
}

// Items returns a copy of the catalog entries in order
func (c *Catalog) Items() []Food {
	if c == nil {
		return nil
	}
	out := make([]Food, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Find looks up a food by ID
func (c *Catalog) Find(id string) (Food, bool) {
	if c == nil {
		return Food{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Food{}, false
	}
	return c.items[i], true
}

// PriceOf returns the catalog price of id
func (c *Catalog) PriceOf(id string) (decimal.Decimal, bool) {
	f, ok := c.Find(id)
	if !ok {
		return decimal.Zero, false
	}
	return f.Price, true
}

// Categories returns distinct categories in first-seen order
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, f := range c.items {
		if f.Category == "" || seen[f.Category] {
			continue
		}
		seen[f.Category] = true
		out = append(out, f.Category)
	}
	return out
}

// Filter returns foods in category (CategoryAll or "" for any) whose name
// or category contains query.
func (c *Catalog) Filter(category, query string) []Food {
	if c == nil {
		return nil
	}
	var out []Food
	for _, f := range c.items {
		if category != "" && category != CategoryAll && f.Category != category {
			continue
		}
		if !f.MatchesQuery(query) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// SpecialOfTheDay returns the first food flagged special
func (c *Catalog) SpecialOfTheDay() (Food, bool) {
	if c == nil {
		return Food{}, false
	}
	for _, f := range c.items {
		if f.SpecialToday {
			return f, true
		}
	}
	return Food{}, false
}

// MatchByName finds a food whose normalized name equals the normalized name
func (c *Catalog) MatchByName(name string) (Food, bool) {
	key := NormalizeName(name)
	if c == nil || key == "" {
		return Food{}, false
	}
	for _, f := range c.items {
		if NormalizeName(f.Name) == key {
			return f, true
		}
	}
	return Food{}, false
}
