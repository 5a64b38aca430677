package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/spsc"
)

func newTestParser() (*Parser, *spsc.Ring[RawPacket], *spsc.Ring[TimestampedMessage], *Counters) {
	q1 := spsc.MustNew[RawPacket](1 << 6)
	q2 := spsc.MustNew[TimestampedMessage](1 << 6)
	var counters Counters
	p := NewParser(q1, q2, &counters, zap.NewNop())
	return p, q1, q2, &counters
}

func packetOf(t *testing.T, records ...func([]byte) int) RawPacket {
	t.Helper()
	var pkt RawPacket
	n := 0
	for _, enc := range records {
		w := enc(pkt.Data[n:])
		require.NotZero(t, w)
		n += w
	}
	pkt.Length = n
	pkt.ReceiveTS = 1234
	return pkt
}

// A 60-byte datagram holding AddOrder(36) + CancelOrder(19) + 5 trailing
// bytes yields exactly the two records; the tail is discarded.
func TestParserWalksRecordsAndDiscardsTrailingBytes(t *testing.T) {
	p, _, q2, counters := newTestParser()

	add := protocol.AddOrder{OrderID: 7, Side: protocol.SideBuy, Symbol: protocol.NewSymbol("AAPL"), Price: 1850500, Quantity: 300}
	cxl := protocol.CancelOrder{OrderID: 7}

	pkt := packetOf(t,
		func(b []byte) int { return add.Encode(100, b) },
		func(b []byte) int { return cxl.Encode(101, b) },
	)
	pkt.Length += 5 // trailing garbage, shorter than a header
	require.Equal(t, 60, pkt.Length)

	p.parsePacket(&pkt)

	first, ok := q2.TryPop()
	require.True(t, ok)
	assert.Equal(t, protocol.TypeAddOrder, first.Msg.Type)
	assert.Equal(t, add, first.Msg.Add)
	assert.Equal(t, uint64(1234), first.ReceiveTS)
	assert.Equal(t, protocol.Timestamp(100), first.ProtocolTS)

	second, ok := q2.TryPop()
	require.True(t, ok)
	assert.Equal(t, protocol.TypeCancelOrder, second.Msg.Type)

	_, ok = q2.TryPop()
	assert.False(t, ok)
	assert.Equal(t, uint64(2), counters.Messages())
	assert.Equal(t, uint64(0), counters.ParseErrors())
}

// A header announcing more bytes than remain abandons the rest of the
// datagram; records before it still come through.
func TestParserAbandonsOnTruncatedRecord(t *testing.T) {
	p, _, q2, counters := newTestParser()

	add := protocol.AddOrder{OrderID: 9, Side: protocol.SideSell, Symbol: protocol.NewSymbol("TSLA"), Price: 2500000, Quantity: 10}
	pkt := packetOf(t, func(b []byte) int { return add.Encode(5, b) })

	// header for another add, but only half its bytes present
	var tail [64]byte
	n := add.Encode(6, tail[:])
	require.Equal(t, protocol.AddOrderSize, n)
	copy(pkt.Data[pkt.Length:], tail[:20])
	pkt.Length += 20

	p.parsePacket(&pkt)

	_, ok := q2.TryPop()
	require.True(t, ok)
	_, ok = q2.TryPop()
	assert.False(t, ok)

	assert.Equal(t, uint64(1), counters.Messages())
	assert.Equal(t, uint64(1), counters.ParseErrors())
}

func TestParserAbandonsOnUnknownType(t *testing.T) {
	p, _, q2, counters := newTestParser()

	cxl := protocol.CancelOrder{OrderID: 3}
	pkt := packetOf(t, func(b []byte) int { return cxl.Encode(1, b) })

	// well-formed header with a tag the codec does not know
	var junk [protocol.CancelOrderSize]byte
	n := protocol.CancelOrder{OrderID: 4}.Encode(2, junk[:])
	require.Equal(t, protocol.CancelOrderSize, n)
	junk[2] = 'Q'
	copy(pkt.Data[pkt.Length:], junk[:])
	pkt.Length += n

	// a record after the bad one must not be reached
	add := protocol.AddOrder{OrderID: 5, Side: protocol.SideBuy, Symbol: protocol.NewSymbol("MSFT"), Price: 1, Quantity: 1}
	pkt.Length += add.Encode(3, pkt.Data[pkt.Length:])

	p.parsePacket(&pkt)

	first, ok := q2.TryPop()
	require.True(t, ok)
	assert.Equal(t, protocol.TypeCancelOrder, first.Msg.Type)
	_, ok = q2.TryPop()
	assert.False(t, ok)
	assert.Equal(t, uint64(1), counters.ParseErrors())
}
