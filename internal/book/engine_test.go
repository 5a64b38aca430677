package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"
)

var (
	aapl = protocol.NewSymbol("AAPL")
	tsla = protocol.NewSymbol("TSLA")
	msft = protocol.NewSymbol("MSFT")
)

func newEngine() *Engine {
	return NewEngine(1024)
}

func TestAddOrderOnEmptyBook(t *testing.T) {
	e := newEngine()
	require.True(t, e.AddOrder(1, protocol.SideBuy, aapl, 1850000, 100))

	b := e.Book(aapl)
	assert.Equal(t, protocol.Price(1850000), b.BestBidPrice())
	assert.Equal(t, protocol.Quantity(100), b.BestBidQty())
	assert.Equal(t, 1, e.LiveOrders())
}

func TestAddDuplicateIDIgnored(t *testing.T) {
	e := newEngine()
	require.True(t, e.AddOrder(1, protocol.SideBuy, aapl, 1850000, 100))
	assert.False(t, e.AddOrder(1, protocol.SideBuy, aapl, 1860000, 50))

	assert.Equal(t, protocol.Price(1850000), e.Book(aapl).BestBidPrice())
	assert.Equal(t, 1, e.LiveOrders())
}

// Two orders on one level, cancel one: level survives with the other's
// quantity and a count of one.
func TestCancelOneOfTwoAtLevel(t *testing.T) {
	e := newEngine()
	e.AddOrder(1, protocol.SideBuy, tsla, 2500000, 100)
	e.AddOrder(2, protocol.SideBuy, tsla, 2500000, 200)

	sym, ok := e.CancelOrder(1)
	require.True(t, ok)
	assert.Equal(t, tsla, sym)

	b := e.Book(tsla)
	assert.Equal(t, protocol.Quantity(200), b.BestBidQty())
	lvl, found := b.Level(protocol.SideBuy, 2500000)
	require.True(t, found)
	assert.Equal(t, uint32(1), lvl.OrderCount)
}

func TestCancelLastOrderRemovesLevel(t *testing.T) {
	e := newEngine()
	e.AddOrder(1, protocol.SideBuy, aapl, 1850000, 100)
	e.AddOrder(2, protocol.SideBuy, aapl, 1840000, 60)

	_, ok := e.CancelOrder(1)
	require.True(t, ok)

	b := e.Book(aapl)
	assert.Equal(t, protocol.Price(1840000), b.BestBidPrice(), "best falls to next level")

	_, ok = e.CancelOrder(2)
	require.True(t, ok)
	assert.Equal(t, protocol.Price(0), b.BestBidPrice())
	assert.Equal(t, 0, e.LiveOrders())
}

func TestFullExecutionErasesOrderAndLevel(t *testing.T) {
	e := newEngine()
	e.AddOrder(1, protocol.SideBuy, msft, 4100000, 300)

	sym, ok := e.ExecuteOrder(1, 300)
	require.True(t, ok)
	assert.Equal(t, msft, sym)

	assert.Equal(t, protocol.Price(0), e.Book(msft).BestBidPrice())
	_, live := e.Find(1)
	assert.False(t, live)
}

func TestPartialExecution(t *testing.T) {
	e := newEngine()
	e.AddOrder(1, protocol.SideSell, aapl, 1860000, 500)

	_, ok := e.ExecuteOrder(1, 200)
	require.True(t, ok)

	b := e.Book(aapl)
	assert.Equal(t, protocol.Quantity(300), b.BestAskQty())

	o, live := e.Find(1)
	require.True(t, live)
	assert.Equal(t, protocol.Quantity(300), o.Remaining)
}

func TestOverfillTreatedAsFullFill(t *testing.T) {
	e := newEngine()
	e.AddOrder(1, protocol.SideBuy, aapl, 1850000, 100)

	_, ok := e.ExecuteOrder(1, 1000)
	require.True(t, ok)

	assert.Equal(t, protocol.Price(0), e.Book(aapl).BestBidPrice())
	_, live := e.Find(1)
	assert.False(t, live)
}

func TestReplaceMovesQuantityBetweenLevels(t *testing.T) {
	e := newEngine()
	e.AddOrder(1, protocol.SideBuy, aapl, 1850000, 100)

	sym, ok := e.ReplaceOrder(1, 1860000, 200)
	require.True(t, ok)
	assert.Equal(t, aapl, sym)

	b := e.Book(aapl)
	assert.Equal(t, protocol.Price(1860000), b.BestBidPrice())
	assert.Equal(t, protocol.Quantity(200), b.BestBidQty())

	_, found := b.Level(protocol.SideBuy, 1850000)
	assert.False(t, found, "old level had only this order")
}

// Replace charges the order's current remaining off the old level, not its
// original quantity. A partially executed order therefore leaves the other
// resting quantity untouched.
func TestReplaceChargesOldRemaining(t *testing.T) {
	e := newEngine()
	e.AddOrder(1, protocol.SideBuy, aapl, 1850000, 100)
	e.AddOrder(2, protocol.SideBuy, aapl, 1850000, 50)
	_, ok := e.ExecuteOrder(1, 40)
	require.True(t, ok)

	_, ok = e.ReplaceOrder(1, 1855000, 80)
	require.True(t, ok)

	b := e.Book(aapl)
	lvlOld, found := b.Level(protocol.SideBuy, 1850000)
	require.True(t, found)
	assert.Equal(t, protocol.Quantity(50), lvlOld.TotalQty)

	lvlNew, found := b.Level(protocol.SideBuy, 1855000)
	require.True(t, found)
	assert.Equal(t, protocol.Quantity(80), lvlNew.TotalQty)
}

func TestUnknownIDOperationsAreNoOps(t *testing.T) {
	e := newEngine()
	e.AddOrder(1, protocol.SideBuy, aapl, 1850000, 100)

	_, ok := e.CancelOrder(999)
	assert.False(t, ok)
	_, ok = e.ExecuteOrder(999, 10)
	assert.False(t, ok)
	_, ok = e.ReplaceOrder(999, 1860000, 10)
	assert.False(t, ok)

	b := e.Book(aapl)
	assert.Equal(t, protocol.Price(1850000), b.BestBidPrice())
	assert.Equal(t, protocol.Quantity(100), b.BestBidQty())
	assert.Equal(t, 1, e.LiveOrders())

	_, live := e.Find(999)
	assert.False(t, live, "replace must not create an order")
}

func TestSymbolsAreIndependent(t *testing.T) {
	e := newEngine()
	e.AddOrder(1, protocol.SideBuy, aapl, 1850000, 100)
	e.AddOrder(2, protocol.SideBuy, tsla, 2500000, 200)

	assert.Equal(t, protocol.Price(1850000), e.Book(aapl).BestBidPrice())
	assert.Equal(t, protocol.Price(2500000), e.Book(tsla).BestBidPrice())

	e.CancelOrder(1)
	assert.Equal(t, protocol.Price(0), e.Book(aapl).BestBidPrice())
	assert.Equal(t, protocol.Price(2500000), e.Book(tsla).BestBidPrice())
}
