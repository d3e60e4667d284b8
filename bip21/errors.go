package bip21

import "errors"

var (
	// ErrNotURI indicates the text is neither a bitcoin: URI nor a
	// bare address.
	ErrNotURI = errors.New("bip21: not a bitcoin URI")

	// ErrMalformedQuery indicates the query string cannot be parsed.
	ErrMalformedQuery = errors.New("bip21: malformed query string")

	// ErrDuplicateKey indicates a query parameter appears more than once.
	ErrDuplicateKey = errors.New("bip21: duplicate key")

	// ErrInvalidAddress indicates the address component fails validation.
	ErrInvalidAddress = errors.New("bip21: invalid address")

	// ErrInvalidField indicates a query parameter is malformed.
	ErrInvalidField = errors.New("bip21: invalid field")

	// ErrAmountOutOfRange indicates the amount is negative or exceeds
	// the network's supply cap.
	ErrAmountOutOfRange = errors.New("bip21: amount out of range")

	// ErrInconsistentAmount indicates the plain amount and the embedded
	// invoice's amount disagree beyond the rounding tolerance.
	ErrInconsistentAmount = errors.New("bip21: inconsistent lightning amount")

	// ErrInconsistentAddress indicates the plain address and the
	// embedded invoice's fallback address differ.
	ErrInconsistentAddress = errors.New("bip21: inconsistent lightning address")
)
