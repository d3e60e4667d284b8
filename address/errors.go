package address

import "errors"

var (
	// ErrInvalidAddress indicates the string does not decode as an
	// address for the configured network.
	ErrInvalidAddress = errors.New("address: invalid address")

	// ErrInvalidScript indicates a script expression or raw script is
	// malformed.
	ErrInvalidScript = errors.New("address: invalid script")

	// ErrInvalidDestination indicates the destination is neither an
	// address nor a manual script expression.
	ErrInvalidDestination = errors.New("address: invalid address or script")

	// ErrScriptBuild indicates locking-script construction failed.
	ErrScriptBuild = errors.New("address: script build failed")
)
