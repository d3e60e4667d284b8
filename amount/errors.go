package amount

import "errors"

var (
	// ErrEmptyAmount indicates the amount string is empty or whitespace.
	ErrEmptyAmount = errors.New("amount: amount is empty")

	// ErrInvalidAmount indicates the amount string is not a decimal number.
	ErrInvalidAmount = errors.New("amount: invalid amount")

	// ErrOutOfRange indicates the amount is negative or exceeds the
	// network's supply cap.
	ErrOutOfRange = errors.New("amount: amount out of range")
)
