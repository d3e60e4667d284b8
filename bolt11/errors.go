package bolt11

import "errors"

var (
	// ErrDecode indicates the invoice string is not a valid bolt11
	// invoice.
	ErrDecode = errors.New("bolt11: invoice decode failed")

	// ErrEncode indicates invoice serialization or signing failed.
	ErrEncode = errors.New("bolt11: invoice encode failed")
)
