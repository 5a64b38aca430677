// Package feed is the producer core: a stateful event generator that keeps
// its own inventory of live orders so every Cancel/Execute/Replace it emits
// references a real order, and a batcher that paces datagrams to a target
// event rate.
package feed

import (
	"math/rand"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/pkg/utils"
)

// Event mix, cumulative percentages.
const (
	weightAdd     = 40
	weightCancel  = weightAdd + 25
	weightExecute = weightCancel + 20
	weightReplace = weightExecute + 10
	// remainder is Trade
)

const (
	priceJitter = 5000 // +-0.5000 around the symbol's current price
	priceWalk   = 50   // +-0.0050 random walk per trade
	minQty      = 10
	maxQty      = 1000
)

type liveOrder struct {
	id     protocol.OrderID
	side   protocol.Side
	symbol protocol.Symbol
	price  protocol.Price
	qty    protocol.Quantity
}

// Generator fabricates a protocol-legal event stream. All choices come from
// one seeded source; the same seed reproduces the exact byte stream for a
// fixed timestamp input. Single-threaded.
type Generator struct {
	rng       *rand.Rand
	symbols   []protocol.Symbol
	prices    map[uint64]protocol.Price
	inventory []liveOrder
	nextID    protocol.OrderID
	events    uint64
}

// NewGenerator seeds the stream. initialPrices is keyed by symbol string
// with raw fixed-point values; symbols without an entry start at $100.
func NewGenerator(seed int64, symbols []string, initialPrices map[string]uint32) *Generator {
	g := &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		prices: make(map[uint64]protocol.Price, len(symbols)),
	}
	for _, s := range symbols {
		sym := protocol.NewSymbol(s)
		g.symbols = append(g.symbols, sym)
		price := protocol.Price(100 * protocol.PriceScale)
		if raw, ok := initialPrices[s]; ok {
			price = protocol.Price(raw)
		}
		g.prices[sym.Key()] = price
	}
	return g
}

// FillBatch packs back-to-back records into buf until the next record does
// not fit, encoding each directly into the send buffer while updating the
// inventory. Returns bytes written and events encoded.
func (g *Generator) FillBatch(buf []byte, ts protocol.Timestamp) (int, int) {
	n, events := 0, 0
	for {
		w := g.appendEvent(buf[n:], ts)
		if w == 0 {
			return n, events
		}
		n += w
		events++
	}
}

// Events is the total encoded since construction.
func (g *Generator) Events() uint64 {
	return g.events
}

// Live is the current inventory size.
func (g *Generator) Live() int {
	return len(g.inventory)
}

// appendEvent draws one weighted event, encodes it at the front of buf and
// commits the matching inventory mutation. Returns 0 without mutating when
// the record does not fit; the caller closes the datagram.
func (g *Generator) appendEvent(buf []byte, ts protocol.Timestamp) int {
	roll := g.rng.Intn(100)
	if roll >= weightAdd && roll < weightReplace && len(g.inventory) == 0 {
		roll = 0 // nothing to cancel/execute/replace yet
	}

	var n int
	switch {
	case roll < weightAdd:
		n = g.emitAdd(buf, ts)
	case roll < weightCancel:
		n = g.emitCancel(buf, ts)
	case roll < weightExecute:
		n = g.emitExecute(buf, ts)
	case roll < weightReplace:
		n = g.emitReplace(buf, ts)
	default:
		n = g.emitTrade(buf, ts)
	}
	if n > 0 {
		g.events++
	}
	return n
}

func (g *Generator) emitAdd(buf []byte, ts protocol.Timestamp) int {
	sym := g.symbols[g.rng.Intn(len(g.symbols))]
	side := protocol.SideBuy
	if g.rng.Intn(2) == 1 {
		side = protocol.SideSell
	}
	price := utils.OffsetPrice(g.prices[sym.Key()], g.jitter(priceJitter))
	qty := g.quantity()

	msg := protocol.AddOrder{
		OrderID:  g.nextID + 1,
		Side:     side,
		Symbol:   sym,
		Price:    price,
		Quantity: qty,
	}
	n := msg.Encode(ts, buf)
	if n == 0 {
		return 0
	}
	g.nextID++
	g.inventory = append(g.inventory, liveOrder{
		id: msg.OrderID, side: side, symbol: sym, price: price, qty: qty,
	})
	return n
}

func (g *Generator) emitCancel(buf []byte, ts protocol.Timestamp) int {
	idx := g.rng.Intn(len(g.inventory))
	n := protocol.CancelOrder{OrderID: g.inventory[idx].id}.Encode(ts, buf)
	if n == 0 {
		return 0
	}
	g.removeAt(idx)
	return n
}

func (g *Generator) emitExecute(buf []byte, ts protocol.Timestamp) int {
	idx := g.rng.Intn(len(g.inventory))
	o := &g.inventory[idx]
	fill := protocol.Quantity(1 + g.rng.Intn(int(o.qty)))

	n := protocol.ExecuteOrder{OrderID: o.id, Quantity: fill}.Encode(ts, buf)
	if n == 0 {
		return 0
	}
	if fill >= o.qty {
		g.removeAt(idx)
	} else {
		o.qty -= fill
	}
	return n
}

func (g *Generator) emitReplace(buf []byte, ts protocol.Timestamp) int {
	idx := g.rng.Intn(len(g.inventory))
	o := &g.inventory[idx]
	newPrice := utils.OffsetPrice(o.price, g.jitter(priceJitter))
	newQty := g.quantity()

	n := protocol.ReplaceOrder{OrderID: o.id, Price: newPrice, Quantity: newQty}.Encode(ts, buf)
	if n == 0 {
		return 0
	}
	o.price = newPrice
	o.qty = newQty
	return n
}

func (g *Generator) emitTrade(buf []byte, ts protocol.Timestamp) int {
	sym := g.symbols[g.rng.Intn(len(g.symbols))]
	key := sym.Key()

	msg := protocol.Trade{
		Symbol:   sym,
		Price:    g.prices[key],
		Quantity: g.quantity(),
	}
	if len(g.inventory) > 0 {
		msg.BuyOrderID = g.inventory[g.rng.Intn(len(g.inventory))].id
		msg.SellOrderID = g.inventory[g.rng.Intn(len(g.inventory))].id
	}
	n := msg.Encode(ts, buf)
	if n == 0 {
		return 0
	}
	// walk the symbol's reference price after emission
	g.prices[key] = utils.OffsetPrice(g.prices[key], g.jitter(priceWalk))
	return n
}

func (g *Generator) removeAt(idx int) {
	last := len(g.inventory) - 1
	g.inventory[idx] = g.inventory[last]
	g.inventory = g.inventory[:last]
}

// jitter is uniform in [-bound, +bound].
func (g *Generator) jitter(bound int64) int64 {
	return g.rng.Int63n(2*bound+1) - bound
}

// quantity is uniform in [minQty, maxQty].
func (g *Generator) quantity() protocol.Quantity {
	return protocol.Quantity(minQty + g.rng.Intn(maxQty-minQty+1))
}
