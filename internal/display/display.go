// Package display is the consumer's human-facing surface: the periodic
// stats line and, unless suppressed, a top-of-book table per symbol. It
// implements pipeline.Observer and runs entirely on the sink thread.
package display

import (
	"fmt"
	"io"
	"sort"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/pipeline"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/stats"
)

// row is the latest top-of-book seen for one symbol.
type row struct {
	symbol protocol.Symbol
	update pipeline.BookUpdate
}

type Display struct {
	out   io.Writer
	table bool
	rows  map[uint64]*row
}

// New writes to out. With table false only the stats line is emitted, as a
// single JSON object per interval.
func New(out io.Writer, table bool) *Display {
	return &Display{
		out:   out,
		table: table,
		rows:  make(map[uint64]*row),
	}
}

func (d *Display) OnUpdate(u pipeline.BookUpdate) {
	key := u.Symbol.Key()
	r, ok := d.rows[key]
	if !ok {
		r = &row{symbol: u.Symbol}
		d.rows[key] = r
	}
	r.update = u
}

func (d *Display) Report(s stats.Snapshot) {
	if !d.table {
		fmt.Fprintln(d.out, s.JSON())
		return
	}

	fmt.Fprintf(d.out, "msgs/s %.0f  upd/s %.0f  drop %d  p50 %.1fus  p95 %.1fus  p99 %.1fus  p999 %.1fus\n",
		s.MsgsPerSec, s.UpdatesPerSec, s.Dropped, s.P50, s.P95, s.P99, s.P999)
	d.renderTable()
}

func (d *Display) renderTable() {
	if len(d.rows) == 0 {
		return
	}
	rows := make([]*row, 0, len(d.rows))
	for _, r := range d.rows {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].symbol.String() < rows[j].symbol.String()
	})

	fmt.Fprintf(d.out, "%-8s %10s %12s %12s %10s\n", "SYMBOL", "BID QTY", "BID", "ASK", "ASK QTY")
	for _, r := range rows {
		u := r.update
		fmt.Fprintf(d.out, "%-8s %10d %12s %12s %10d\n",
			r.symbol.String(), u.BestBidQty, side(u.BestBid), side(u.BestAsk), u.BestAskQty)
	}
}

// side formats a price, rendering an empty side as "-" instead of $0.
func side(p protocol.Price) string {
	if p == 0 {
		return "-"
	}
	return fmt.Sprintf("%.4f", p.Float())
}
