package book

import (
	"sort"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"
)

// PriceLevel aggregates the live orders resting at one price on one side.
type PriceLevel struct {
	Price      protocol.Price
	TotalQty   protocol.Quantity
	OrderCount uint32
}

// bookSide holds one side's levels: a slice sorted ascending by price for
// ordered traversal, plus a price-keyed map for O(1) level lookup.
type bookSide struct {
	levels []*PriceLevel
	index  map[protocol.Price]*PriceLevel
}

func newBookSide() bookSide {
	return bookSide{
		index: make(map[protocol.Price]*PriceLevel),
	}
}

// addQty fetches or creates the level at price and adds qty to it.
func (s *bookSide) addQty(price protocol.Price, qty protocol.Quantity) {
	lvl, ok := s.index[price]
	if !ok {
		lvl = &PriceLevel{Price: price}
		s.index[price] = lvl
		pos := sort.Search(len(s.levels), func(i int) bool {
			return s.levels[i].Price >= price
		})
		s.levels = append(s.levels, nil)
		copy(s.levels[pos+1:], s.levels[pos:])
		s.levels[pos] = lvl
	}
	lvl.TotalQty += qty
	lvl.OrderCount++
}

// removeQty charges qty off the level at price, clamped at zero, and drops
// one from the order count. A level whose quantity reaches zero is deleted.
func (s *bookSide) removeQty(price protocol.Price, qty protocol.Quantity) {
	lvl, ok := s.index[price]
	if !ok {
		return
	}
	if qty > lvl.TotalQty {
		qty = lvl.TotalQty
	}
	lvl.TotalQty -= qty
	if lvl.OrderCount > 0 {
		lvl.OrderCount--
	}
	if lvl.TotalQty == 0 {
		s.deleteLevel(price)
	}
}

func (s *bookSide) deleteLevel(price protocol.Price) {
	delete(s.index, price)
	for i, lvl := range s.levels {
		if lvl.Price == price {
			s.levels = append(s.levels[:i], s.levels[i+1:]...)
			return
		}
	}
}

func (s *bookSide) level(price protocol.Price) (*PriceLevel, bool) {
	lvl, ok := s.index[price]
	return lvl, ok
}

func (s *bookSide) empty() bool {
	return len(s.levels) == 0
}

// lowest returns the minimum-price level (best ask when s is the ask side).
func (s *bookSide) lowest() *PriceLevel {
	if len(s.levels) == 0 {
		return nil
	}
	return s.levels[0]
}

// highest returns the maximum-price level (best bid when s is the bid side).
func (s *bookSide) highest() *PriceLevel {
	if len(s.levels) == 0 {
		return nil
	}
	return s.levels[len(s.levels)-1]
}

// ascending returns up to n levels from the lowest price up.
func (s *bookSide) ascending(n int) []PriceLevel {
	if n > len(s.levels) {
		n = len(s.levels)
	}
	out := make([]PriceLevel, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, *s.levels[i])
	}
	return out
}

// descending returns up to n levels from the highest price down.
func (s *bookSide) descending(n int) []PriceLevel {
	if n > len(s.levels) {
		n = len(s.levels)
	}
	out := make([]PriceLevel, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, *s.levels[len(s.levels)-1-i])
	}
	return out
}
