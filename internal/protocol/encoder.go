package protocol

import "encoding/binary"

// Encoding is field-wise little-endian. Records never alias a struct over the
// raw buffer; every field is written through encoding/binary so the layout is
// identical on any host.

func putHeader(buf []byte, length uint16, typ byte, ts Timestamp) {
	binary.LittleEndian.PutUint16(buf[0:2], length)
	buf[2] = typ
	binary.LittleEndian.PutUint64(buf[3:11], uint64(ts))
}

// Encode writes the record into buf and returns the bytes written.
// Returns 0 when buf is smaller than the record's wire size; nothing is
// written in that case and the caller closes the current datagram.
func (m AddOrder) Encode(ts Timestamp, buf []byte) int {
	if len(buf) < AddOrderSize {
		return 0
	}
	putHeader(buf, AddOrderSize, TypeAddOrder, ts)
	binary.LittleEndian.PutUint64(buf[11:19], uint64(m.OrderID))
	buf[19] = byte(m.Side)
	copy(buf[20:28], m.Symbol[:])
	binary.LittleEndian.PutUint32(buf[28:32], uint32(m.Price))
	binary.LittleEndian.PutUint32(buf[32:36], uint32(m.Quantity))
	return AddOrderSize
}

func (m CancelOrder) Encode(ts Timestamp, buf []byte) int {
	if len(buf) < CancelOrderSize {
		return 0
	}
	putHeader(buf, CancelOrderSize, TypeCancelOrder, ts)
	binary.LittleEndian.PutUint64(buf[11:19], uint64(m.OrderID))
	return CancelOrderSize
}

func (m ExecuteOrder) Encode(ts Timestamp, buf []byte) int {
	if len(buf) < ExecuteOrderSize {
		return 0
	}
	putHeader(buf, ExecuteOrderSize, TypeExecuteOrder, ts)
	binary.LittleEndian.PutUint64(buf[11:19], uint64(m.OrderID))
	binary.LittleEndian.PutUint32(buf[19:23], uint32(m.Quantity))
	return ExecuteOrderSize
}

func (m ReplaceOrder) Encode(ts Timestamp, buf []byte) int {
	if len(buf) < ReplaceOrderSize {
		return 0
	}
	putHeader(buf, ReplaceOrderSize, TypeReplaceOrder, ts)
	binary.LittleEndian.PutUint64(buf[11:19], uint64(m.OrderID))
	binary.LittleEndian.PutUint32(buf[19:23], uint32(m.Price))
	binary.LittleEndian.PutUint32(buf[23:27], uint32(m.Quantity))
	return ReplaceOrderSize
}

func (m Trade) Encode(ts Timestamp, buf []byte) int {
	if len(buf) < TradeSize {
		return 0
	}
	putHeader(buf, TradeSize, TypeTrade, ts)
	copy(buf[11:19], m.Symbol[:])
	binary.LittleEndian.PutUint32(buf[19:23], uint32(m.Price))
	binary.LittleEndian.PutUint32(buf[23:27], uint32(m.Quantity))
	binary.LittleEndian.PutUint64(buf[27:35], uint64(m.BuyOrderID))
	binary.LittleEndian.PutUint64(buf[35:43], uint64(m.SellOrderID))
	return TradeSize
}

// EncodeMessage dispatches on the union tag. Unknown tags write nothing.
func EncodeMessage(m Message, ts Timestamp, buf []byte) int {
	switch m.Type {
	case TypeAddOrder:
		return m.Add.Encode(ts, buf)
	case TypeCancelOrder:
		return m.Cancel.Encode(ts, buf)
	case TypeExecuteOrder:
		return m.Execute.Encode(ts, buf)
	case TypeReplaceOrder:
		return m.Replace.Encode(ts, buf)
	case TypeTrade:
		return m.Trade.Encode(ts, buf)
	default:
		return 0
	}
}
