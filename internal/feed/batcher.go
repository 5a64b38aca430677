package feed

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/pkg/clock"
)

// BatchBytes is the send-buffer fill target, safely under a 1500-byte MTU.
const BatchBytes = 1400

// Summary is the final count the producer prints on termination.
type Summary struct {
	Events    uint64
	Datagrams uint64
	Elapsed   time.Duration
	Rate      float64
}

// Batcher drives the generator: fill one datagram's worth of records, send
// it, sleep until the paced deadline, repeat until the run duration lapses.
// There is no graceful inventory drain; the consumer tolerates the abrupt
// end of the stream.
type Batcher struct {
	gen      *Generator
	out      io.Writer
	rate     uint64 // events per second
	duration time.Duration
	log      *zap.Logger
}

func NewBatcher(gen *Generator, out io.Writer, eventsPerSecond uint64, duration time.Duration, log *zap.Logger) *Batcher {
	return &Batcher{
		gen:      gen,
		out:      out,
		rate:     eventsPerSecond,
		duration: duration,
		log:      log,
	}
}

// Run blocks for the configured duration and returns the final summary.
// Deadlines accumulate: a slow tick is compensated by a tighter next tick.
func (b *Batcher) Run() (Summary, error) {
	interval := uint64(time.Second) / b.rate
	buf := make([]byte, BatchBytes)

	start := clock.Nanos()
	deadline := start + uint64(b.duration)
	next := start

	var sum Summary
	for clock.Nanos() < deadline {
		n, events := b.gen.FillBatch(buf, protocol.Timestamp(clock.NanosSinceMidnight()))
		if n > 0 {
			if _, err := b.out.Write(buf[:n]); err != nil {
				return sum, err
			}
			sum.Datagrams++
			sum.Events += uint64(events)
		}

		next += uint64(events) * interval
		clock.SleepUntil(next)
	}

	sum.Elapsed = time.Duration(clock.Nanos() - start)
	if sum.Elapsed > 0 {
		sum.Rate = float64(sum.Events) / sum.Elapsed.Seconds()
	}
	b.log.Info("run complete",
		zap.Uint64("events", sum.Events),
		zap.Uint64("datagrams", sum.Datagrams),
		zap.Duration("elapsed", sum.Elapsed),
		zap.Float64("events_per_sec", sum.Rate),
		zap.Int("live_orders", b.gen.Live()),
	)
	return sum, nil
}
