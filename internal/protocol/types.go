package protocol

import (
	"encoding/binary"
	"fmt"
)

// Price is fixed-point: raw value is price in dollars x 10,000.
// e.g. 1850500 = $185.0500
type Price uint32

// PriceScale converts between raw Price values and display dollars.
const PriceScale = 10_000

func (p Price) Float() float64 {
	return float64(p) / PriceScale
}

func PriceFromFloat(f float64) Price {
	return Price(f * PriceScale)
}

func (p Price) String() string {
	return fmt.Sprintf("%.4f", p.Float())
}

type Quantity uint32

type OrderID uint64

// Timestamp is nanoseconds since local midnight on the wire.
type Timestamp uint64

type Side uint8

const (
	SideBuy  Side = 0x01
	SideSell Side = 0x02
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return fmt.Sprintf("side(0x%02x)", uint8(s))
	}
}

// SymbolLength is the fixed wire width of a symbol field.
const SymbolLength = 8

// Symbol is a fixed 8-byte field, right-padded with NUL.
type Symbol [SymbolLength]byte

func NewSymbol(s string) Symbol {
	var sym Symbol
	copy(sym[:], s)
	return sym
}

// Key reinterprets the 8 bytes as a uint64 for O(1) map lookup.
func (s Symbol) Key() uint64 {
	return binary.LittleEndian.Uint64(s[:])
}

func (s Symbol) String() string {
	n := 0
	for n < SymbolLength && s[n] != 0 {
		n++
	}
	return string(s[:n])
}
