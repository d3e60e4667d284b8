package contacts

import "errors"

var (
	// ErrNotFound indicates no contact is stored under the key.
	ErrNotFound = errors.New("contacts: not found")

	// ErrInvalidKey indicates the contact key is empty.
	ErrInvalidKey = errors.New("contacts: invalid key")
)
