package protocol

import "encoding/binary"

// ParseHeader reads the 11-byte record header at the start of buf.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrTruncated
	}
	h := Header{
		Length:    binary.LittleEndian.Uint16(buf[0:2]),
		Type:      buf[2],
		Timestamp: Timestamp(binary.LittleEndian.Uint64(buf[3:11])),
	}
	if int(h.Length) < HeaderSize {
		return Header{}, ErrBadLength
	}
	return h, nil
}

// PeekType returns the type tag without decoding the record.
// The caller guarantees len(buf) >= HeaderSize.
func PeekType(buf []byte) byte {
	return buf[2]
}

// Parse decodes one full record positioned at the start of buf.
// Unknown tags yield ErrUnknownType; a header length past the end of buf
// yields ErrTruncated. The payload is copied field-wise out of the buffer.
func Parse(buf []byte) (Message, error) {
	h, err := ParseHeader(buf)
	if err != nil {
		return Message{}, err
	}
	size := WireSize(h.Type)
	if size == 0 {
		return Message{}, ErrUnknownType
	}
	if int(h.Length) != size || len(buf) < size {
		return Message{}, ErrTruncated
	}

	msg := Message{Type: h.Type, Timestamp: h.Timestamp}
	p := buf[HeaderSize:]
	switch h.Type {
	case TypeAddOrder:
		msg.Add.OrderID = OrderID(binary.LittleEndian.Uint64(p[0:8]))
		msg.Add.Side = Side(p[8])
		copy(msg.Add.Symbol[:], p[9:17])
		msg.Add.Price = Price(binary.LittleEndian.Uint32(p[17:21]))
		msg.Add.Quantity = Quantity(binary.LittleEndian.Uint32(p[21:25]))
	case TypeCancelOrder:
		msg.Cancel.OrderID = OrderID(binary.LittleEndian.Uint64(p[0:8]))
	case TypeExecuteOrder:
		msg.Execute.OrderID = OrderID(binary.LittleEndian.Uint64(p[0:8]))
		msg.Execute.Quantity = Quantity(binary.LittleEndian.Uint32(p[8:12]))
	case TypeReplaceOrder:
		msg.Replace.OrderID = OrderID(binary.LittleEndian.Uint64(p[0:8]))
		msg.Replace.Price = Price(binary.LittleEndian.Uint32(p[8:12]))
		msg.Replace.Quantity = Quantity(binary.LittleEndian.Uint32(p[12:16]))
	case TypeTrade:
		copy(msg.Trade.Symbol[:], p[0:8])
		msg.Trade.Price = Price(binary.LittleEndian.Uint32(p[8:12]))
		msg.Trade.Quantity = Quantity(binary.LittleEndian.Uint32(p[12:16]))
		msg.Trade.BuyOrderID = OrderID(binary.LittleEndian.Uint64(p[16:24]))
		msg.Trade.SellOrderID = OrderID(binary.LittleEndian.Uint64(p[24:32]))
	}
	return msg, nil
}
