// Package bip21 decodes and encodes bitcoin: payment URIs.
//
// A URI bundles an address with optional amount, label, message,
// timestamp, expiry, signature, legacy payment-request reference and
// an embedded Lightning invoice. Decoding is strict: duplicate query
// keys, malformed fields and inconsistencies between the plain fields
// and the embedded invoice are all hard errors.
package bip21

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil"
	"github.com/btcsuite/btcutil/base58"
	"github.com/shopspring/decimal"

	"github.com/payidorg/libpayid-go/address"
	"github.com/payidorg/libpayid-go/bolt11"
)

// Scheme is the URI scheme, compared case-insensitively.
const Scheme = "bitcoin"

// amountTolerance is the allowed difference, in satoshis, between the
// plain amount field and the embedded invoice's amount. One satoshi of
// leeway absorbs millisatoshi truncation.
const amountTolerance = 1

// exponentRE matches the legacy exponent shorthand <mantissa>X<digit>.
// Only the prefix is significant; trailing characters are ignored.
var exponentRE = regexp.MustCompile(`^([0-9.]+)X([0-9])`)

// URI is a decoded bitcoin: URI.
type URI struct {
	Address   string
	AmountSat *int64
	Label     string
	Message   string
	Memo      string // duplicate of Message, kept for backward compatibility
	Time      *int64
	Exp       *int64
	Sig       []byte
	// RequestURL is the "r" parameter: a legacy signed payment-request
	// reference that requires a network fetch before payment.
	RequestURL string
	// Lightning is the raw embedded invoice string; Invoice is its
	// decoded form.
	Lightning string
	Invoice   *bolt11.Invoice
	// Extras holds unrecognized query parameters verbatim.
	Extras map[string]string
}

// Decode parses text as a bitcoin: URI. Input without a scheme
// separator is accepted iff it validates as a bare address. The
// decoder dec is used for the embedded lightning field; it must not
// be nil when such a field may be present.
func Decode(text string, params *chaincfg.Params, dec bolt11.Decoder) (*URI, error) {
	if !strings.Contains(text, ":") {
		if !address.IsValid(text, params) {
			return nil, fmt.Errorf("%w: not an address", ErrNotURI)
		}
		return &URI{Address: text}, nil
	}

	u, err := url.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotURI, err)
	}
	if !strings.EqualFold(u.Scheme, Scheme) {
		return nil, fmt.Errorf("%w: scheme %q", ErrNotURI, u.Scheme)
	}

	addr := u.Opaque
	if addr == "" {
		addr = strings.TrimPrefix(u.Path, "/")
	}

	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuery, err)
	}
	fields := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, k)
		}
		fields[k] = v[0]
	}

	out := &URI{}
	if addr != "" {
		if !address.IsValid(addr, params) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
		}
		out.Address = addr
	}

	for k, v := range fields {
		switch k {
		case "amount":
			sats, err := parseAmountField(v)
			if err != nil {
				return nil, err
			}
			out.AmountSat = &sats
		case "label":
			out.Label = v
		case "message":
			out.Message = v
			out.Memo = v
		case "time":
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: time %q", ErrInvalidField, v)
			}
			out.Time = &n
		case "exp":
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: exp %q", ErrInvalidField, v)
			}
			out.Exp = &n
		case "sig":
			raw := base58.Decode(v)
			if len(raw) == 0 {
				return nil, fmt.Errorf("%w: sig is not base58", ErrInvalidField)
			}
			out.Sig = raw
		case "r":
			out.RequestURL = v
		case "lightning":
			out.Lightning = v
		default:
			if out.Extras == nil {
				out.Extras = make(map[string]string)
			}
			out.Extras[k] = v
		}
	}

	if out.Lightning != "" {
		if dec == nil {
			return nil, fmt.Errorf("%w: no invoice decoder configured", ErrInvalidField)
		}
		inv, err := dec.Decode(out.Lightning)
		if err != nil {
			return nil, fmt.Errorf("%w: lightning field: %v", ErrInvalidField, err)
		}
		out.Invoice = inv
		if err := checkConsistency(out, inv); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// checkConsistency cross-validates the plain address/amount fields
// against the embedded invoice.
func checkConsistency(u *URI, inv *bolt11.Invoice) error {
	if u.AmountSat != nil && *u.AmountSat != 0 {
		if invSat, ok := inv.AmountSat(); ok {
			diff := *u.AmountSat - invSat
			if diff < 0 {
				diff = -diff
			}
			if diff > amountTolerance {
				return fmt.Errorf("%w: amount %d vs invoice %d", ErrInconsistentAmount, *u.AmountSat, invSat)
			}
		}
	}
	if u.Address != "" && inv.FallbackAddress != "" && u.Address != inv.FallbackAddress {
		return fmt.Errorf("%w: %q vs invoice fallback %q", ErrInconsistentAddress, u.Address, inv.FallbackAddress)
	}
	return nil
}

// parseAmountField parses the amount parameter: plain decimal whole
// coins, or the <mantissa>X<digit> shorthand scaling the mantissa by
// 10^digit satoshis (digit 8 is whole-coin scale).
func parseAmountField(v string) (int64, error) {
	var d decimal.Decimal
	if m := exponentRE.FindStringSubmatch(v); m != nil {
		mantissa, err := decimal.NewFromString(m[1])
		if err != nil {
			return 0, fmt.Errorf("%w: amount %q", ErrInvalidField, v)
		}
		exp, _ := strconv.Atoi(m[2])
		d = mantissa.Shift(int32(exp))
	} else {
		plain, err := decimal.NewFromString(v)
		if err != nil {
			return 0, fmt.Errorf("%w: amount %q", ErrInvalidField, v)
		}
		d = plain.Shift(8)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("%w: amount %q is negative", ErrAmountOutOfRange, v)
	}
	sats := d.IntPart()
	if sats > int64(btcutil.MaxSatoshi) {
		return 0, fmt.Errorf("%w: %q exceeds the supply cap", ErrAmountOutOfRange, v)
	}
	return sats, nil
}
