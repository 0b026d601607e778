package menu

import "github.com/shopspring/decimal"

type seedEntry struct {
	id       string
	name     string
	price    int64
	category string
}

// seedEntries is the menu bundled with the client, shown when the backend
// catalog cannot be reached.
var seedEntries = []seedEntry{
	{"1", "Chips", 20, "Snacks"},
	{"2", "Samosa", 15, "Snacks"},
	{"3", "Burger", 35, "Salad"},
	{"4", "Hot Dog", 45, "Snacks"},
	{"5", "Pav Bhaji", 45, "Snacks"},
	{"6", "Maggi", 35, "Snacks"},
	{"7", "Peri Peri Fries", 50, "Snacks"},
	{"8", "Chai", 15, "Beverges"},
	{"9", "Cold drinks", 20, "Beverges"},
	{"10", "Lassi", 25, "Beverges"},
	{"11", "Coffee", 30, "Beverges"},
	{"12", "Milkshake", 50, "Beverges"},
	{"13", "Vegan Sandwich", 35, "Sandwich"},
	{"14", "Grilled Sandwich", 40, "Sandwich"},
	{"15", "Bread Sandwich", 24, "Sandwich"},
	{"16", "Veg Noodles", 40, "Noodles"},
	{"17", "Hakka Noodles", 45, "Noodles"},
	{"18", "Fried Rice", 50, "Noodles"},
	{"19", "Cheese Pizza", 65, "Pizza"},
	{"20", "Tomato Pizza", 70, "Pizza"},
	{"21", "Corn Pizza", 75, "Pizza"},
	{"22", "Chole bature", 50, "Special"},
	{"27", "Rajma Chawal", 50, "Special"},
	{"23", "Chole Chawal", 55, "Special"},
}

// SeedCatalog returns the bundled fallback catalog
func SeedCatalog() *Catalog {
	items := make([]Food, 0, len(seedEntries))
	for _, e := range seedEntries {
		items = append(items, Food{
			ID:       e.id,
			Name:     e.name,
			Price:    decimal.NewFromInt(e.price),
			Category: e.category,
			ImageRef: "food_" + e.id,
		})
	}
	return NewCatalog(items)
}
