package feed

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"
)

var testSymbols = []string{"AAPL", "TSLA", "MSFT", "AMZN", "NVDA"}

func testPrices() map[string]uint32 {
	return map[string]uint32{
		"AAPL": 1850000,
		"TSLA": 2500000,
		"MSFT": 4100000,
		"AMZN": 1780000,
		"NVDA": 8750000,
	}
}

// decodeBatch walks a filled buffer and returns every record.
func decodeBatch(t *testing.T, data []byte) []protocol.Message {
	t.Helper()
	var msgs []protocol.Message
	off := 0
	for off < len(data) {
		msg, err := protocol.Parse(data[off:])
		require.NoError(t, err, "offset %d", off)
		off += protocol.WireSize(msg.Type)
		msgs = append(msgs, msg)
	}
	require.Equal(t, len(data), off, "batch must be exactly back-to-back records")
	return msgs
}

func TestSameSeedSameBytes(t *testing.T) {
	a := NewGenerator(42, testSymbols, testPrices())
	b := NewGenerator(42, testSymbols, testPrices())

	bufA := make([]byte, BatchBytes)
	bufB := make([]byte, BatchBytes)
	for i := 0; i < 20; i++ {
		nA, evA := a.FillBatch(bufA, 777)
		nB, evB := b.FillBatch(bufB, 777)
		require.Equal(t, nA, nB)
		require.Equal(t, evA, evB)
		require.True(t, bytes.Equal(bufA[:nA], bufB[:nB]), "batch %d diverged", i)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := NewGenerator(1, testSymbols, testPrices())
	b := NewGenerator(2, testSymbols, testPrices())

	bufA := make([]byte, BatchBytes)
	bufB := make([]byte, BatchBytes)
	nA, _ := a.FillBatch(bufA, 0)
	nB, _ := b.FillBatch(bufB, 0)
	assert.False(t, nA == nB && bytes.Equal(bufA[:nA], bufB[:nB]))
}

func TestBatchFitsBufferAndIsDense(t *testing.T) {
	g := NewGenerator(7, testSymbols, testPrices())
	buf := make([]byte, BatchBytes)

	for i := 0; i < 50; i++ {
		n, events := g.FillBatch(buf, 1)
		require.LessOrEqual(t, n, BatchBytes)
		require.Positive(t, events)
		// the smallest record is 19 bytes; a full batch leaves less than
		// one maximum record of slack
		require.Greater(t, n, BatchBytes-protocol.TradeSize)
		decodeBatch(t, buf[:n])
	}
}

// Replaying the stream against a shadow inventory proves every Cancel,
// Execute and Replace references an order that is live at that point.
func TestStreamIsProtocolLegal(t *testing.T) {
	g := NewGenerator(42, testSymbols, testPrices())
	buf := make([]byte, BatchBytes)

	live := make(map[protocol.OrderID]protocol.Quantity)
	seen := make(map[protocol.OrderID]bool)
	counts := make(map[byte]int)

	for i := 0; i < 200; i++ {
		n, _ := g.FillBatch(buf, 0)
		for _, msg := range decodeBatch(t, buf[:n]) {
			counts[msg.Type]++
			switch msg.Type {
			case protocol.TypeAddOrder:
				m := msg.Add
				assert.False(t, seen[m.OrderID], "order ids must be session-unique")
				seen[m.OrderID] = true
				assert.GreaterOrEqual(t, m.Quantity, protocol.Quantity(minQty))
				assert.LessOrEqual(t, m.Quantity, protocol.Quantity(maxQty))
				assert.NotZero(t, m.Price)
				live[m.OrderID] = m.Quantity
			case protocol.TypeCancelOrder:
				_, ok := live[msg.Cancel.OrderID]
				require.True(t, ok, "cancel of dead order %d", msg.Cancel.OrderID)
				delete(live, msg.Cancel.OrderID)
			case protocol.TypeExecuteOrder:
				m := msg.Execute
				rem, ok := live[m.OrderID]
				require.True(t, ok, "execute of dead order %d", m.OrderID)
				require.LessOrEqual(t, m.Quantity, rem, "fill above remaining")
				require.Positive(t, m.Quantity)
				if m.Quantity == rem {
					delete(live, m.OrderID)
				} else {
					live[m.OrderID] = rem - m.Quantity
				}
			case protocol.TypeReplaceOrder:
				m := msg.Replace
				_, ok := live[m.OrderID]
				require.True(t, ok, "replace of dead order %d", m.OrderID)
				live[m.OrderID] = m.Quantity
			}
		}
		require.Equal(t, len(live), g.Live(), "shadow inventory diverged")
	}

	for _, typ := range []byte{'A', 'X', 'E', 'R', 'T'} {
		assert.Positive(t, counts[typ], "type %c never drawn", typ)
	}
	assert.Greater(t, counts['A'], counts['T'], "weights should favor adds")
}

func TestEmptyInventoryFallsBackToAdd(t *testing.T) {
	g := NewGenerator(3, testSymbols, testPrices())
	var buf [64]byte

	// first event can only be Add or Trade; anything referencing the
	// inventory must have been converted to Add
	n := g.appendEvent(buf[:], 0)
	require.NotZero(t, n)
	msg, err := protocol.Parse(buf[:n])
	require.NoError(t, err)
	assert.Contains(t, []byte{protocol.TypeAddOrder, protocol.TypeTrade}, msg.Type)
}

func TestAppendEventBufferTooSmall(t *testing.T) {
	g := NewGenerator(5, testSymbols, testPrices())
	small := make([]byte, protocol.CancelOrderSize-1)

	events := g.Events()
	inv := g.Live()
	n := g.appendEvent(small, 0)
	assert.Zero(t, n)
	assert.Equal(t, events, g.Events(), "failed encode must not count")
	assert.Equal(t, inv, g.Live(), "failed encode must not mutate inventory")
}

func TestBatcherPacesAndSummarizes(t *testing.T) {
	g := NewGenerator(42, testSymbols, testPrices())
	var sink bytes.Buffer

	b := NewBatcher(g, &sink, 50_000, 100*time.Millisecond, zap.NewNop())
	sum, err := b.Run()
	require.NoError(t, err)

	assert.Positive(t, sum.Events)
	assert.Positive(t, sum.Datagrams)
	assert.GreaterOrEqual(t, sum.Elapsed, 100*time.Millisecond)
	// paced rate should land near the target; generous bounds for CI noise
	assert.InDelta(t, 50_000, sum.Rate, 25_000)
	assert.Equal(t, g.Events(), sum.Events)
}
