package book

import "github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"

// Engine owns the process-wide order store and the per-symbol books. All
// methods are single-threaded: the book stage is the only caller.
//
// Cancel/Execute/Replace of an id not in the store are silent no-ops; the
// bool result lets the caller skip emitting a book update for them.
type Engine struct {
	store *Store
	books map[uint64]*OrderBook
}

func NewEngine(storeCapacity int) *Engine {
	return &Engine{
		store: NewStore(storeCapacity),
		books: make(map[uint64]*OrderBook),
	}
}

// Book returns the symbol's book, creating it on first use.
func (e *Engine) Book(sym protocol.Symbol) *OrderBook {
	key := sym.Key()
	if b, ok := e.books[key]; ok {
		return b
	}
	b := NewOrderBook()
	e.books[key] = b
	return b
}

// AddOrder stores a new live order and books its quantity on the symbol's
// level. An id that is already live is ignored.
func (e *Engine) AddOrder(id protocol.OrderID, side protocol.Side, sym protocol.Symbol, price protocol.Price, qty protocol.Quantity) bool {
	if _, exists := e.store.Find(id); exists {
		return false
	}
	o := &Order{ID: id, Side: side, Symbol: sym, Price: price, Remaining: qty}
	e.store.Insert(o)
	e.Book(sym).AddQty(side, price, qty)
	return true
}

// CancelOrder removes the order's full remaining quantity from its level and
// erases it. Returns the symbol so the caller can emit an update for it.
func (e *Engine) CancelOrder(id protocol.OrderID) (protocol.Symbol, bool) {
	o, ok := e.store.Find(id)
	if !ok {
		return protocol.Symbol{}, false
	}
	e.Book(o.Symbol).RemoveQty(o.Side, o.Price, o.Remaining)
	e.store.Erase(id)
	return o.Symbol, true
}

// ExecuteOrder charges fill quantity off the order's level. A fill at or
// above the remaining quantity is a full fill and erases the order.
func (e *Engine) ExecuteOrder(id protocol.OrderID, fill protocol.Quantity) (protocol.Symbol, bool) {
	o, ok := e.store.Find(id)
	if !ok {
		return protocol.Symbol{}, false
	}
	if fill >= o.Remaining {
		e.Book(o.Symbol).RemoveQty(o.Side, o.Price, o.Remaining)
		e.store.Erase(id)
	} else {
		e.Book(o.Symbol).RemoveQty(o.Side, o.Price, fill)
		o.Remaining -= fill
	}
	return o.Symbol, true
}

// ReplaceOrder charges the old remaining quantity off the old level, books
// the new quantity on the new level, and mutates the order in place. A
// replace of an unknown id does not create an order.
func (e *Engine) ReplaceOrder(id protocol.OrderID, newPrice protocol.Price, newQty protocol.Quantity) (protocol.Symbol, bool) {
	o, ok := e.store.Find(id)
	if !ok {
		return protocol.Symbol{}, false
	}
	b := e.Book(o.Symbol)
	b.RemoveQty(o.Side, o.Price, o.Remaining)
	b.AddQty(o.Side, newPrice, newQty)
	o.Price = newPrice
	o.Remaining = newQty
	return o.Symbol, true
}

// Find exposes order-store lookup for diagnostics and tests.
func (e *Engine) Find(id protocol.OrderID) (*Order, bool) {
	return e.store.Find(id)
}

// LiveOrders is the current live-order population across all symbols.
func (e *Engine) LiveOrders() int {
	return e.store.Len()
}

// Symbols returns the keys of every book seen so far.
func (e *Engine) Symbols() []uint64 {
	keys := make([]uint64, 0, len(e.books))
	for k := range e.books {
		keys = append(keys, k)
	}
	return keys
}
