package domain

import "time"

const (
	// MaxCartItems caps the number of distinct lines a cart may hold.
	MaxCartItems = 50
	// MaxItemQuantity caps the quantity of a single line.
	MaxItemQuantity = 99
)

// CartItem is a single line in a shopping cart. Prices are Chilean pesos,
// captured at the moment the client last synced the cart.
type CartItem struct {
	ProductCode string `json:"codigo"`
	Name        string `json:"nombre"`
	UnitPrice   int64  `json:"precio"`
	Quantity    int    `json:"cantidad"`
}

// Cart holds the current shopping cart of one user, keyed by RUN. Updates
// replace the item list wholesale — the client always sends the full desired
// state, so there is no per-line merge logic.
type Cart struct {
	RUN       string     `json:"run"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total returns the cart total in pesos.
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}
