package lnurl

import "errors"

var (
	// ErrDecode indicates the string is not a valid bech32 lnurl
	// pointer or does not encode an http URL.
	ErrDecode = errors.New("lnurl: pointer decode failed")

	// ErrEncode indicates bech32 encoding failed.
	ErrEncode = errors.New("lnurl: pointer encode failed")

	// ErrHTTP indicates a pay-service round trip failed at the
	// transport level.
	ErrHTTP = errors.New("lnurl: request failed")

	// ErrServiceError indicates the pay service returned an LNURL
	// error envelope.
	ErrServiceError = errors.New("lnurl: service error")

	// ErrBadResponse indicates the pay service returned a malformed
	// or incomplete response.
	ErrBadResponse = errors.New("lnurl: bad response")
)
