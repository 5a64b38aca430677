package utils

import "github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/protocol"

// MinPrice is one tick; fixed-point prices never reach zero, since a zero
// best-bid/ask price means "side empty" to every reader.
const MinPrice protocol.Price = 1

// OffsetPrice shifts a fixed-point price by a signed raw delta, clamping at
// MinPrice so jitter below the current price cannot wrap the unsigned value.
func OffsetPrice(p protocol.Price, delta int64) protocol.Price {
	v := int64(p) + delta
	if v < int64(MinPrice) {
		return MinPrice
	}
	return protocol.Price(v)
}

// AlignToTick floors a raw price onto a tick grid. A zero tick leaves the
// price unchanged.
func AlignToTick(p protocol.Price, tick protocol.Price) protocol.Price {
	if tick == 0 {
		return p
	}
	return p - p%tick
}
