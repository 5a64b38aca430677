package protocol

import "errors"

var (
	// ErrTruncated means the buffer ends before the record its header announces.
	ErrTruncated = errors.New("truncated record")
	// ErrUnknownType means the header carries a type tag this codec does not know.
	ErrUnknownType = errors.New("unknown record type")
	// ErrBadLength means the header length field is smaller than the header itself.
	ErrBadLength = errors.New("record length below header size")
)
