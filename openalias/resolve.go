// Package openalias resolves email-like aliases to payment addresses
// via DNS TXT records (OpenAlias).
//
// A record has the form "oa1:btc recipient_address=...;
// recipient_name=...;". Resolution reports whether the answer was
// DNSSEC-authenticated; an unauthenticated answer is returned with
// Validated=false so the caller can warn the user rather than fail.
package openalias

import (
	"context"
	"fmt"
	"strings"

	"github.com/payidorg/libpayid-go/address"
)

// recordPrefix marks an OpenAlias TXT record for the bitcoin asset.
const recordPrefix = "oa1:btc"

// Result is a resolved alias.
type Result struct {
	Address   string
	Name      string
	Validated bool // DNSSEC-authenticated answer
}

// Resolve looks up key's TXT records and returns the first valid
// OpenAlias result. The resolved address is validated for r's network.
func (r *Resolver) Resolve(ctx context.Context, key string) (*Result, error) {
	name, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}

	txts, validated, err := r.lookupTXT(ctx, name)
	if err != nil {
		return nil, err
	}

	for _, txt := range txts {
		res, ok := parseRecord(txt)
		if !ok {
			continue
		}
		if !address.IsValid(res.Address, r.params) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRecordAddress, res.Address)
		}
		res.Validated = validated
		return res, nil
	}
	return nil, fmt.Errorf("%w: no %s record for %s", ErrNoRecord, recordPrefix, name)
}

// normalizeKey converts an alias key into the DNS name to query.
// The key must look like an email or dotted name; "@" maps to ".".
func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || !strings.Contains(key, ".") ||
		strings.ContainsAny(key, " <>") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return strings.Replace(key, "@", ".", 1), nil
}

// parseRecord parses one TXT record. ok is false when the record is
// not an OpenAlias record for this asset.
func parseRecord(txt string) (*Result, bool) {
	txt = strings.TrimSpace(txt)
	if !strings.HasPrefix(txt, recordPrefix) {
		return nil, false
	}

	res := &Result{}
	for _, field := range strings.Split(txt[len(recordPrefix):], ";") {
		k, v, found := strings.Cut(strings.TrimSpace(field), "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(k) {
		case "recipient_address":
			res.Address = strings.TrimSpace(v)
		case "recipient_name":
			res.Name = strings.TrimSpace(v)
		}
	}
	if res.Address == "" {
		return nil, false
	}
	return res, true
}
