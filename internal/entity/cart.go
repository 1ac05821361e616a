package entity

import "github.com/shopspring/decimal"

// CartLine is one product entry in the cart. At most one line exists per
// product ID; adding the same product again merges by summing quantities.
type CartLine struct {
	ProductID   int             `json:"product_id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
}

// Subtotal is always recomputed, never stored.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartState is the full per-session cart: the ordered lines (insertion order
// of first add) plus the staged pre-add quantities shown next to each menu
// card. It is what cart stores persist for the lifetime of a session.
type CartState struct {
	Lines  []CartLine  `json:"lines"`
	Staged map[int]int `json:"staged"`
}

// NewCartState returns an empty cart.
func NewCartState() *CartState {
	return &CartState{Staged: map[int]int{}}
}

// Line returns a pointer into Lines for the given product, or nil.
func (s *CartState) Line(productID int) *CartLine {
	for i := range s.Lines {
		if s.Lines[i].ProductID == productID {
			return &s.Lines[i]
		}
	}
	return nil
}

// StagedQuantity is the pre-add quantity for a menu card, defaulting to 1.
func (s *CartState) StagedQuantity(productID int) int {
	if q, ok := s.Staged[productID]; ok && q >= 1 {
		return q
	}
	return 1
}

// ChatMessage is one entry in a session's chat thread. Timestamps are
// applied at render time, so none is stored here.
type ChatMessage struct {
	Sender string `json:"sender"` // "user" or "bot"
	Body   string `json:"body"`
}
