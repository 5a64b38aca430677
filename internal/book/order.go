package book

import (
	"fmt"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"
)

// Order is a live order as the consumer knows it. It names its symbol and
// price but holds no pointer back into the book; the engine re-derives the
// price level from (symbol, side, price) on each mutation.
type Order struct {
	ID        protocol.OrderID
	Side      protocol.Side
	Symbol    protocol.Symbol
	Price     protocol.Price
	Remaining protocol.Quantity
}

func (o *Order) String() string {
	return fmt.Sprintf("[ID:%d %s %s %d@%s]",
		o.ID, o.Symbol, o.Side, o.Remaining, o.Price)
}
