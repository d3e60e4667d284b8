package openalias

import "errors"

var (
	// ErrInvalidKey indicates the alias key is not an email-like or
	// dotted name.
	ErrInvalidKey = errors.New("openalias: invalid alias key")

	// ErrLookupFailed indicates the DNS TXT lookup failed.
	ErrLookupFailed = errors.New("openalias: DNS lookup failed")

	// ErrNoRecord indicates the name has no OpenAlias TXT record.
	ErrNoRecord = errors.New("openalias: no OpenAlias record")

	// ErrInvalidRecordAddress indicates the record's recipient address
	// fails validation for the configured network.
	ErrInvalidRecordAddress = errors.New("openalias: invalid recipient address in record")
)
