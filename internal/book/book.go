package book

import "github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"

// OrderBook is one symbol's two-sided aggregation of live orders into
// price-sorted levels. It reconstructs depth, not per-order queue position:
// FIFO order within a level is intentionally lost.
type OrderBook struct {
	bids bookSide
	asks bookSide
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids: newBookSide(),
		asks: newBookSide(),
	}
}

func (b *OrderBook) side(s protocol.Side) *bookSide {
	if s == protocol.SideBuy {
		return &b.bids
	}
	return &b.asks
}

func (b *OrderBook) AddQty(side protocol.Side, price protocol.Price, qty protocol.Quantity) {
	b.side(side).addQty(price, qty)
}

func (b *OrderBook) RemoveQty(side protocol.Side, price protocol.Price, qty protocol.Quantity) {
	b.side(side).removeQty(price, qty)
}

// BestBidPrice returns zero when the bid side is empty.
func (b *OrderBook) BestBidPrice() protocol.Price {
	if lvl := b.bids.highest(); lvl != nil {
		return lvl.Price
	}
	return 0
}

func (b *OrderBook) BestBidQty() protocol.Quantity {
	if lvl := b.bids.highest(); lvl != nil {
		return lvl.TotalQty
	}
	return 0
}

// BestAskPrice returns zero when the ask side is empty.
func (b *OrderBook) BestAskPrice() protocol.Price {
	if lvl := b.asks.lowest(); lvl != nil {
		return lvl.Price
	}
	return 0
}

func (b *OrderBook) BestAskQty() protocol.Quantity {
	if lvl := b.asks.lowest(); lvl != nil {
		return lvl.TotalQty
	}
	return 0
}

// BidLevels returns up to n levels in descending price order.
func (b *OrderBook) BidLevels(n int) []PriceLevel {
	return b.bids.descending(n)
}

// AskLevels returns up to n levels in ascending price order.
func (b *OrderBook) AskLevels(n int) []PriceLevel {
	return b.asks.ascending(n)
}

// Level looks up the aggregate at an exact price on one side.
func (b *OrderBook) Level(side protocol.Side, price protocol.Price) (PriceLevel, bool) {
	lvl, ok := b.side(side).level(price)
	if !ok {
		return PriceLevel{}, false
	}
	return *lvl, true
}

func (b *OrderBook) Empty() bool {
	return b.bids.empty() && b.asks.empty()
}
