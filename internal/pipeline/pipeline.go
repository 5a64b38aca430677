// Package pipeline wires the consumer's four stages together:
// receiver -> Q1 -> parser -> Q2 -> book -> Q3 -> sink.
// Each stage owns one goroutine; the rings are the only shared mutable
// state, each with exactly one writer stage and one reader stage.
package pipeline

import (
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/book"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/spsc"
)

// Queue capacities. Powers of two; raw packets are the largest slots so Q1
// stays the smallest.
const (
	rawQueueCapacity    = 1 << 12
	parsedQueueCapacity = 1 << 14
	updateQueueCapacity = 1 << 14
)

type Pipeline struct {
	counters Counters

	q1 *spsc.Ring[RawPacket]
	q2 *spsc.Ring[TimestampedMessage]
	q3 *spsc.Ring[BookUpdate]

	receiver *Receiver
	parser   *Parser
	book     *BookStage
	sink     *Sink

	log *zap.Logger
}

// New constructs every queue and stage up front; nothing is lazily
// initialized. conn must already be bound and joined to the group.
func New(conn net.PacketConn, observer Observer, reportInterval time.Duration, log *zap.Logger) *Pipeline {
	p := &Pipeline{
		q1:  spsc.MustNew[RawPacket](rawQueueCapacity),
		q2:  spsc.MustNew[TimestampedMessage](parsedQueueCapacity),
		q3:  spsc.MustNew[BookUpdate](updateQueueCapacity),
		log: log,
	}
	engine := book.NewEngine(book.DefaultStoreCapacity)

	p.receiver = NewReceiver(conn, p.q1, &p.counters, log.Named("receiver"))
	p.parser = NewParser(p.q1, p.q2, &p.counters, log.Named("parser"))
	p.book = NewBookStage(p.q2, p.q3, engine, &p.counters, log.Named("book"))
	p.sink = NewSink(p.q3, &p.counters, observer, reportInterval, log.Named("sink"))
	return p
}

// Start brings the stages up back to front so every queue has its consumer
// running before its producer.
func (p *Pipeline) Start() {
	p.sink.Start()
	p.book.Start()
	p.parser.Start()
	p.receiver.Start()
	p.log.Info("pipeline started")
}

// Stop shuts down front to back: receiver first so no new packets enter,
// then parser, book, sink. Items still queued when a stage's flag flips may
// or may not be processed; correctness does not depend on drainage.
func (p *Pipeline) Stop() {
	p.receiver.Stop()
	p.parser.Stop()
	p.book.Stop()
	p.sink.Stop()
	p.log.Info("pipeline stopped",
		zap.Uint64("packets", p.counters.Received()),
		zap.Uint64("dropped", p.counters.Dropped()),
		zap.Uint64("messages", p.counters.Messages()),
		zap.Uint64("updates", p.counters.Updates()),
		zap.Uint64("parse_errors", p.counters.ParseErrors()),
		zap.Uint64("unknown_orders", p.counters.UnknownOrders()),
	)
}

// Counters exposes the shared counts for tests and the command surface.
func (p *Pipeline) Counters() *Counters {
	return &p.counters
}

// Engine exposes the book engine; callers other than the book stage must
// only touch it after Stop.
func (p *Pipeline) Engine() *book.Engine {
	return p.book.Engine()
}
