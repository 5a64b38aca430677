package pipeline

import (
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/spsc"
)

// Parser drains raw datagrams and walks the back-to-back records inside
// each. A record that fails validation abandons the remainder of its
// datagram; drops never happen below the datagram boundary.
type Parser struct {
	in       *spsc.Ring[RawPacket]
	out      *spsc.Ring[TimestampedMessage]
	counters *Counters
	log      *zap.Logger

	running atomic.Bool
	done    chan struct{}
}

func NewParser(in *spsc.Ring[RawPacket], out *spsc.Ring[TimestampedMessage], counters *Counters, log *zap.Logger) *Parser {
	return &Parser{
		in:       in,
		out:      out,
		counters: counters,
		log:      log,
	}
}

func (p *Parser) Start() {
	p.done = make(chan struct{})
	p.running.Store(true)
	go p.loop()
}

func (p *Parser) Stop() {
	p.running.Store(false)
	<-p.done
}

func (p *Parser) loop() {
	defer close(p.done)

	for p.running.Load() {
		pkt, ok := p.in.TryPop()
		if !ok {
			runtime.Gosched()
			continue
		}
		p.parsePacket(&pkt)
	}
}

// parsePacket walks record boundaries in one datagram. Trailing bytes too
// short to hold a header are discarded silently; a header announcing more
// bytes than remain, or an undecodable record, abandons the rest of the
// datagram and counts one parse error.
func (p *Parser) parsePacket(pkt *RawPacket) {
	data := pkt.Data[:pkt.Length]
	off := 0
	for off+protocol.HeaderSize <= len(data) {
		h, err := protocol.ParseHeader(data[off:])
		if err != nil {
			p.counters.ParseError()
			return
		}
		if int(h.Length) > len(data)-off {
			p.counters.ParseError()
			return
		}
		msg, err := protocol.Parse(data[off : off+int(h.Length)])
		if err != nil {
			p.counters.ParseError()
			return
		}

		tm := TimestampedMessage{
			Msg:        msg,
			ReceiveTS:  pkt.ReceiveTS,
			ProtocolTS: msg.Timestamp,
		}
		if !p.push(tm) {
			return
		}
		p.counters.MessageDecoded(msg.Type)
		off += int(h.Length)
	}
}

// push spin-yields on a full book queue; the book stage is expected to
// outrun the receiver on average. Gives up only on shutdown.
func (p *Parser) push(tm TimestampedMessage) bool {
	for !p.out.TryPush(tm) {
		if !p.running.Load() {
			return false
		}
		runtime.Gosched()
	}
	return true
}
