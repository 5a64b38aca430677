package pipeline

import (
	"net"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/spsc"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/pkg/clock"
)

// pollTimeout bounds each blocking read so the receiver observes the running
// flag promptly on shutdown.
const pollTimeout = 50 * time.Millisecond

// Receiver owns the joined multicast socket. It stamps each datagram on
// arrival and hands it to the parser queue; when that queue is full the
// packet is dropped and counted, never retried.
type Receiver struct {
	conn     net.PacketConn
	out      *spsc.Ring[RawPacket]
	counters *Counters
	log      *zap.Logger

	running atomic.Bool
	done    chan struct{}
}

func NewReceiver(conn net.PacketConn, out *spsc.Ring[RawPacket], counters *Counters, log *zap.Logger) *Receiver {
	return &Receiver{
		conn:     conn,
		out:      out,
		counters: counters,
		log:      log,
	}
}

func (r *Receiver) Start() {
	r.done = make(chan struct{})
	r.running.Store(true)
	go r.loop()
}

// Stop flips the running flag and joins the receive loop. No new packets
// enter the pipeline after Stop returns.
func (r *Receiver) Stop() {
	r.running.Store(false)
	<-r.done
}

func (r *Receiver) loop() {
	defer close(r.done)

	var pkt RawPacket
	for r.running.Load() {
		if err := r.conn.SetReadDeadline(time.Now().Add(pollTimeout)); err != nil {
			r.log.Error("receiver: set read deadline", zap.Error(err))
			return
		}
		n, _, err := r.conn.ReadFrom(pkt.Data[:])
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			if r.running.Load() {
				r.log.Error("receiver: read", zap.Error(err))
			}
			continue
		}

		pkt.Length = n
		pkt.ReceiveTS = clock.Nanos()
		r.counters.PacketReceived()

		if !r.out.TryPush(pkt) {
			r.counters.PacketDropped()
		}
	}
}
