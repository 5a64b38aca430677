package pipeline

import (
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/spsc"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/stats"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/pkg/clock"
)

// DefaultReportInterval is the stats/display refresh period.
const DefaultReportInterval = time.Second

// Sink drains book updates, records end-to-end latency, and reports one
// snapshot per interval measured on the monotonic clock. The latency buffer
// is owned exclusively by this thread and resets on every report.
type Sink struct {
	in         *spsc.Ring[BookUpdate]
	reporter   *stats.Reporter
	counters   *Counters
	observer   Observer
	intervalNs uint64
	log        *zap.Logger

	running atomic.Bool
	done    chan struct{}
}

func NewSink(in *spsc.Ring[BookUpdate], counters *Counters, observer Observer, interval time.Duration, log *zap.Logger) *Sink {
	if interval <= 0 {
		interval = DefaultReportInterval
	}
	return &Sink{
		in:         in,
		reporter:   stats.NewReporter(0),
		counters:   counters,
		observer:   observer,
		intervalNs: uint64(interval),
		log:        log,
	}
}

func (s *Sink) Start() {
	s.done = make(chan struct{})
	s.running.Store(true)
	go s.loop()
}

func (s *Sink) Stop() {
	s.running.Store(false)
	<-s.done
}

func (s *Sink) loop() {
	defer close(s.done)

	lastReport := clock.Nanos()
	lastMessages := s.counters.Messages()
	lastDropped := s.counters.Dropped()

	for s.running.Load() {
		upd, ok := s.in.TryPop()
		if ok {
			s.reporter.Record(upd.BookUpdateTS - upd.ReceiveTS)
			if s.observer != nil {
				s.observer.OnUpdate(upd)
			}
		} else {
			runtime.Gosched()
		}

		now := clock.Nanos()
		if now-lastReport >= s.intervalNs {
			messages := s.counters.Messages()
			dropped := s.counters.Dropped()
			snap := s.reporter.Snapshot(now-lastReport, messages-lastMessages, dropped-lastDropped)
			if s.observer != nil {
				s.observer.Report(snap)
			}
			lastReport = now
			lastMessages = messages
			lastDropped = dropped
		}
	}
}
