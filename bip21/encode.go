package bip21

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/payidorg/libpayid-go/address"
	"github.com/payidorg/libpayid-go/amount"
)

// Encode composes a bitcoin: URI for the given address, optional
// amount in satoshis (0 omits it) and optional message. Extra query
// parameters are appended verbatim; their keys must already be
// URL-safe.
func Encode(addr string, amountSat int64, message string, extras map[string]string, params *chaincfg.Params) (string, error) {
	if !address.IsValid(addr, params) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}

	var query []string
	if amountSat > 0 {
		query = append(query, "amount="+amount.FormatPlain(amountSat, 8))
	}
	if message != "" {
		query = append(query, "message="+url.QueryEscape(message))
	}
	for k, v := range extras {
		if k == "" || k != url.QueryEscape(k) {
			return "", fmt.Errorf("%w: illegal query key %q", ErrInvalidField, k)
		}
		query = append(query, k+"="+url.QueryEscape(v))
	}

	uri := Scheme + ":" + addr
	if len(query) > 0 {
		uri += "?" + strings.Join(query, "&")
	}
	return uri, nil
}
