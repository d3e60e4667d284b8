// Package address validates payment destinations and converts them to
// and from locking scripts.
//
// A destination is either a native address for the configured network,
// the "Name <address>" recipient form, or a manually written script
// expression of whitespace-separated OP_* and hex tokens.
package address

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcutil"
)

// recipientRE matches the "Name <address>" recipient form; group 2 is
// the address.
var recipientRE = regexp.MustCompile(`^(.*?)\s*\<([0-9A-Za-z]{1,})\>$`)

// IsValid reports whether addr decodes as an address for the given
// network.
func IsValid(addr string, params *chaincfg.Params) bool {
	decoded, err := btcutil.DecodeAddress(addr, params)
	if err != nil {
		return false
	}
	return decoded.IsForNet(params)
}

// ToScript converts an address into its locking script.
func ToScript(addr string, params *chaincfg.Params) ([]byte, error) {
	decoded, err := btcutil.DecodeAddress(addr, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, addr, err)
	}
	if !decoded.IsForNet(params) {
		return nil, fmt.Errorf("%w: %q is for a different network", ErrInvalidAddress, addr)
	}
	script, err := txscript.PayToAddrScript(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScriptBuild, err)
	}
	return script, nil
}

// FromScript converts a locking script back into an address string.
// Scripts that do not encode a single standard address are an error.
func FromScript(script []byte, params *chaincfg.Params) (string, error) {
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(script, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if len(addrs) != 1 {
		return "", fmt.Errorf("%w: script encodes %d addresses", ErrInvalidScript, len(addrs))
	}
	return addrs[0].EncodeAddress(), nil
}

// ExtractRecipient returns the address portion of text, unwrapping the
// "Name <address>" form when present. The result is not validated.
func ExtractRecipient(text string) string {
	text = strings.TrimSpace(text)
	if m := recipientRE.FindStringSubmatch(text); m != nil {
		return m[2]
	}
	return text
}

// ParseRecipient resolves a destination token into a locking script.
// It accepts an address (optionally in "Name <address>" form) or a
// manual script expression.
func ParseRecipient(text string, params *chaincfg.Params) ([]byte, error) {
	addr := ExtractRecipient(text)
	if IsValid(addr, params) {
		return ToScript(addr, params)
	}
	script, scriptErr := ParseScript(text)
	if scriptErr == nil {
		return script, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidDestination, strings.TrimSpace(text))
}
