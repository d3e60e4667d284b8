package payident

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("payident: invalid network (must be \"mainnet\", \"testnet\", or \"regtest\")")

	// ErrInvalidDecimalPoint indicates the decimal point is not one of
	// the supported display units.
	ErrInvalidDecimalPoint = errors.New("payident: invalid decimal point (must be 0, 2, 5, or 8)")

	// ErrUnknownIdentifier indicates the text matched no identifier
	// grammar.
	ErrUnknownIdentifier = errors.New("payident: unknown payment identifier")

	// ErrParse indicates the text matched a grammar but failed to parse.
	ErrParse = errors.New("payident: parse error")

	// ErrNotValid indicates an operation was attempted on an invalid
	// identifier.
	ErrNotValid = errors.New("payident: identifier is not valid")

	// ErrNotOnchain indicates the identifier has no on-chain outputs.
	ErrNotOnchain = errors.New("payident: not an on-chain identifier")

	// ErrNetwork indicates a resolution round failed at the network
	// level; the round may be retried by the caller.
	ErrNetwork = errors.New("payident: network error")

	// ErrNoService indicates the service needed by a round was not
	// provided.
	ErrNoService = errors.New("payident: required service not configured")

	// ErrAmountRange indicates the round-2 amount is outside the
	// bounds reported by round 1.
	ErrAmountRange = errors.New("payident: amount out of range")

	// ErrProtocolViolation indicates a counterparty returned data that
	// contradicts what was requested.
	ErrProtocolViolation = errors.New("payident: protocol violation")

	// ErrRoundState indicates a resolution round was entered when it
	// was not pending. This is a caller bug, not a recoverable state.
	ErrRoundState = errors.New("payident: round not pending")

	// ErrSuperseded indicates the identifier was superseded while a
	// round was in flight; the late result was discarded.
	ErrSuperseded = errors.New("payident: identifier superseded")

	// ErrRequestFailed indicates a fetched legacy payment request
	// reported a request-level failure.
	ErrRequestFailed = errors.New("payident: payment request failed")
)
