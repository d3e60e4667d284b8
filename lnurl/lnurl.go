// Package lnurl implements the Lightning payment-pointer protocol
// (lnurl-pay): bech32 decoding of pointers and the two HTTP round
// trips that turn a pointer plus an amount into a bolt11 invoice.
package lnurl

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
)

// hrp is the human-readable part of every lnurl bech32 string.
const hrp = "lnurl"

// Decode converts a bech32 lnurl string into the HTTP endpoint URL it
// encodes. A leading lightning: scheme and mixed case are accepted;
// the decoded payload must be an absolute http(s) URL.
func Decode(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "lightning:")

	gotHRP, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if gotHRP != hrp {
		return "", fmt.Errorf("%w: hrp %q, expected %q", ErrDecode, gotHRP, hrp)
	}

	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	endpoint := string(converted)
	u, err := url.Parse(endpoint)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: payload %q is not an http URL", ErrDecode, endpoint)
	}
	return endpoint, nil
}

// Encode converts an HTTP endpoint URL into its uppercase bech32
// lnurl form.
func Encode(endpoint string) (string, error) {
	converted, err := bech32.ConvertBits([]byte(endpoint), 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	encoded, err := bech32.Encode(hrp, converted)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return strings.ToUpper(encoded), nil
}
