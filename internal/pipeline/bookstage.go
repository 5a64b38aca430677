package pipeline

import (
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/book"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/spsc"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/pkg/clock"
)

// BookStage applies decoded events to the order store and books. It is the
// only goroutine that touches the engine. Every applied mutation emits a
// top-of-book snapshot for the affected symbol; trades and unknown-order
// events emit nothing.
type BookStage struct {
	in       *spsc.Ring[TimestampedMessage]
	out      *spsc.Ring[BookUpdate]
	engine   *book.Engine
	counters *Counters
	log      *zap.Logger

	running atomic.Bool
	done    chan struct{}
}

func NewBookStage(in *spsc.Ring[TimestampedMessage], out *spsc.Ring[BookUpdate], engine *book.Engine, counters *Counters, log *zap.Logger) *BookStage {
	return &BookStage{
		in:       in,
		out:      out,
		engine:   engine,
		counters: counters,
		log:      log,
	}
}

func (b *BookStage) Start() {
	b.done = make(chan struct{})
	b.running.Store(true)
	go b.loop()
}

func (b *BookStage) Stop() {
	b.running.Store(false)
	<-b.done
}

func (b *BookStage) Engine() *book.Engine {
	return b.engine
}

func (b *BookStage) loop() {
	defer close(b.done)

	for b.running.Load() {
		tm, ok := b.in.TryPop()
		if !ok {
			runtime.Gosched()
			continue
		}
		b.apply(&tm)
	}
}

func (b *BookStage) apply(tm *TimestampedMessage) {
	switch tm.Msg.Type {
	case protocol.TypeAddOrder:
		m := tm.Msg.Add
		if b.engine.AddOrder(m.OrderID, m.Side, m.Symbol, m.Price, m.Quantity) {
			b.emit(m.Symbol, tm.ReceiveTS)
		}
	case protocol.TypeCancelOrder:
		// symbol resolved via the store before erasure
		if sym, ok := b.engine.CancelOrder(tm.Msg.Cancel.OrderID); ok {
			b.emit(sym, tm.ReceiveTS)
		} else {
			b.counters.UnknownOrder()
		}
	case protocol.TypeExecuteOrder:
		m := tm.Msg.Execute
		if sym, ok := b.engine.ExecuteOrder(m.OrderID, m.Quantity); ok {
			b.emit(sym, tm.ReceiveTS)
		} else {
			b.counters.UnknownOrder()
		}
	case protocol.TypeReplaceOrder:
		m := tm.Msg.Replace
		if sym, ok := b.engine.ReplaceOrder(m.OrderID, m.Price, m.Quantity); ok {
			b.emit(sym, tm.ReceiveTS)
		} else {
			b.counters.UnknownOrder()
		}
	case protocol.TypeTrade:
		// informational: no book mutation, no update
		b.counters.TradeObserved()
	}
}

func (b *BookStage) emit(sym protocol.Symbol, receiveTS uint64) {
	bk := b.engine.Book(sym)
	upd := BookUpdate{
		Symbol:       sym,
		BestBid:      bk.BestBidPrice(),
		BestBidQty:   bk.BestBidQty(),
		BestAsk:      bk.BestAskPrice(),
		BestAskQty:   bk.BestAskQty(),
		ReceiveTS:    receiveTS,
		BookUpdateTS: clock.Nanos(),
	}
	for !b.out.TryPush(upd) {
		if !b.running.Load() {
			return
		}
		runtime.Gosched()
	}
	b.counters.BookUpdateEmitted()
}
