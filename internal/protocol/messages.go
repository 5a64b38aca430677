package protocol

// Record type tags, one ASCII byte on the wire.
const (
	TypeAddOrder     byte = 'A'
	TypeCancelOrder  byte = 'X'
	TypeExecuteOrder byte = 'E'
	TypeReplaceOrder byte = 'R'
	TypeTrade        byte = 'T'
)

// HeaderSize is the fixed record header: u16 length, 1 type byte, u64 timestamp.
const HeaderSize = 2 + 1 + 8

// Wire sizes, header included. Payloads are packed with no padding.
const (
	AddOrderSize     = HeaderSize + 8 + 1 + SymbolLength + 4 + 4 // 36
	CancelOrderSize  = HeaderSize + 8                            // 19
	ExecuteOrderSize = HeaderSize + 8 + 4                        // 23
	ReplaceOrderSize = HeaderSize + 8 + 4 + 4                    // 27
	TradeSize        = HeaderSize + SymbolLength + 4 + 4 + 8 + 8 // 43
)

// Header precedes every record on the wire.
type Header struct {
	Length    uint16 // total bytes including the header
	Type      byte
	Timestamp Timestamp
}

type AddOrder struct {
	OrderID  OrderID
	Side     Side
	Symbol   Symbol
	Price    Price
	Quantity Quantity
}

type CancelOrder struct {
	OrderID OrderID
}

type ExecuteOrder struct {
	OrderID  OrderID
	Quantity Quantity
}

type ReplaceOrder struct {
	OrderID  OrderID
	Price    Price
	Quantity Quantity
}

type Trade struct {
	Symbol      Symbol
	Price       Price
	Quantity    Quantity
	BuyOrderID  OrderID
	SellOrderID OrderID
}

// Message is the closed tagged union the decoder produces. Exactly one of
// the payload fields is meaningful, selected by Type. Keeping the union flat
// and value-typed makes it trivially copyable into ring buffer slots, with no
// allocation on the hot path.
type Message struct {
	Type      byte
	Timestamp Timestamp
	Add       AddOrder
	Cancel    CancelOrder
	Execute   ExecuteOrder
	Replace   ReplaceOrder
	Trade     Trade
}

// WireSize returns the full record size for a type tag, or 0 for unknown tags.
func WireSize(typ byte) int {
	switch typ {
	case TypeAddOrder:
		return AddOrderSize
	case TypeCancelOrder:
		return CancelOrderSize
	case TypeExecuteOrder:
		return ExecuteOrderSize
	case TypeReplaceOrder:
		return ReplaceOrderSize
	case TypeTrade:
		return TradeSize
	default:
		return 0
	}
}
