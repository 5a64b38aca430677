package pipeline

import (
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/stats"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/transport"
)

// RawPacket is one datagram as received, stamped on arrival. The payload is
// an inline fixed array so the packet is copied whole into a ring slot with
// no allocation or aliasing of the socket buffer.
type RawPacket struct {
	Data      [transport.MaxDatagram]byte
	Length    int
	ReceiveTS uint64
}

// TimestampedMessage pairs a decoded record with the two clock domains:
// ReceiveTS from the measurement clock at packet arrival, ProtocolTS from
// the producer's wire header.
type TimestampedMessage struct {
	Msg        protocol.Message
	ReceiveTS  uint64
	ProtocolTS protocol.Timestamp
}

// BookUpdate is a top-of-book snapshot emitted after each applied mutation.
// BookUpdateTS is sampled immediately after the mutation; end-to-end latency
// is BookUpdateTS - ReceiveTS.
type BookUpdate struct {
	Symbol       protocol.Symbol
	BestBid      protocol.Price
	BestBidQty   protocol.Quantity
	BestAsk      protocol.Price
	BestAskQty   protocol.Quantity
	ReceiveTS    uint64
	BookUpdateTS uint64
}

// Observer receives the sink's output: every book update as it drains, and
// one snapshot per reporting interval. Called from the sink thread only.
type Observer interface {
	OnUpdate(BookUpdate)
	Report(stats.Snapshot)
}
