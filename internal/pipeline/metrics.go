package pipeline

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	packetsReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_packets_received_total",
		Help: "datagrams read off the multicast socket",
	})
	packetsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_packets_dropped_total",
		Help: "datagrams dropped because the parse queue was full",
	})
	parseErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_parse_errors_total",
		Help: "datagrams abandoned on a truncated or unknown record",
	})
	messagesDecoded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_messages_decoded_total",
		Help: "records decoded, by type tag",
	}, []string{"type"})
	unknownOrders = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_unknown_order_total",
		Help: "cancel/execute/replace events naming an id not in the store",
	})
	tradesObserved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_trades_total",
		Help: "trade records observed (informational, no book mutation)",
	})
	bookUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_book_updates_total",
		Help: "top-of-book snapshots emitted by the book stage",
	})
)

func init() {
	prometheus.MustRegister(
		packetsReceived,
		packetsDropped,
		parseErrors,
		messagesDecoded,
		unknownOrders,
		tradesObserved,
		bookUpdates,
	)
}

// Counters are the pipeline's shared event counts. Stages increment them on
// the hot path; the sink diffs them per reporting interval. Each increment
// mirrors into the prometheus registry.
type Counters struct {
	received      atomic.Uint64
	dropped       atomic.Uint64
	parseErrors   atomic.Uint64
	messages      atomic.Uint64
	unknownOrders atomic.Uint64
	trades        atomic.Uint64
	updates       atomic.Uint64
}

func (c *Counters) PacketReceived() {
	c.received.Add(1)
	packetsReceived.Inc()
}

func (c *Counters) PacketDropped() {
	c.dropped.Add(1)
	packetsDropped.Inc()
}

func (c *Counters) ParseError() {
	c.parseErrors.Add(1)
	parseErrors.Inc()
}

func (c *Counters) MessageDecoded(typ byte) {
	c.messages.Add(1)
	messagesDecoded.WithLabelValues(string(typ)).Inc()
}

func (c *Counters) UnknownOrder() {
	c.unknownOrders.Add(1)
	unknownOrders.Inc()
}

func (c *Counters) TradeObserved() {
	c.trades.Add(1)
	tradesObserved.Inc()
}

func (c *Counters) BookUpdateEmitted() {
	c.updates.Add(1)
	bookUpdates.Inc()
}

func (c *Counters) Received() uint64      { return c.received.Load() }
func (c *Counters) Dropped() uint64       { return c.dropped.Load() }
func (c *Counters) ParseErrors() uint64   { return c.parseErrors.Load() }
func (c *Counters) Messages() uint64      { return c.messages.Load() }
func (c *Counters) UnknownOrders() uint64 { return c.unknownOrders.Load() }
func (c *Counters) Trades() uint64        { return c.trades.Load() }
func (c *Counters) Updates() uint64       { return c.updates.Load() }
