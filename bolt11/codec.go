// Package bolt11 wraps the Lightning invoice codec behind a small
// decoder interface, exposing a neutral view of the fields the payment
// identifier engine needs: payee, payment hash, amount, description
// and on-chain fallback address.
package bolt11

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/lnd/zpay32"
)

// Invoice is a decoded Lightning invoice.
type Invoice struct {
	Raw             string
	PayeePubKey     string // hex-encoded compressed public key
	PaymentHash     []byte
	AmountMilliSat  *int64 // nil when the invoice carries no amount
	Description     string
	FallbackAddress string // empty when no on-chain fallback is present
	RouteHintCount  int
	Timestamp       time.Time
	Expiry          time.Duration
}

// AmountSat returns the invoice amount in satoshis, truncating
// millisatoshi precision. ok is false when no amount is set.
func (inv *Invoice) AmountSat() (int64, bool) {
	if inv.AmountMilliSat == nil {
		return 0, false
	}
	return *inv.AmountMilliSat / 1000, true
}

// Decoder decodes an encoded Lightning invoice string.
type Decoder interface {
	Decode(invoice string) (*Invoice, error)
}

// Codec is the production Decoder, backed by zpay32.
type Codec struct {
	Params *chaincfg.Params
}

// Compile-time interface check.
var _ Decoder = (*Codec)(nil)

// NewCodec returns a Codec for the given network.
func NewCodec(params *chaincfg.Params) *Codec {
	return &Codec{Params: params}
}

// Decode parses a bolt11 invoice string.
func (c *Codec) Decode(invoice string) (*Invoice, error) {
	invoice = strings.TrimSpace(invoice)
	if invoice == "" {
		return nil, fmt.Errorf("%w: empty invoice", ErrDecode)
	}

	decoded, err := zpay32.Decode(invoice, c.Params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	out := &Invoice{
		Raw:            invoice,
		Timestamp:      decoded.Timestamp,
		Expiry:         decoded.Expiry(),
		RouteHintCount: len(decoded.RouteHints),
	}
	if decoded.Destination != nil {
		out.PayeePubKey = hex.EncodeToString(decoded.Destination.SerializeCompressed())
	}
	if decoded.PaymentHash != nil {
		hash := make([]byte, len(decoded.PaymentHash))
		copy(hash, decoded.PaymentHash[:])
		out.PaymentHash = hash
	}
	if decoded.MilliSat != nil {
		msat := int64(*decoded.MilliSat)
		out.AmountMilliSat = &msat
	}
	if decoded.Description != nil {
		out.Description = *decoded.Description
	}
	if decoded.FallbackAddr != nil {
		out.FallbackAddress = decoded.FallbackAddr.EncodeAddress()
	}
	return out, nil
}

// Encode serializes and signs a zpay32 invoice. The signer holds the
// node key; this module never does.
func (c *Codec) Encode(invoice *zpay32.Invoice, signer zpay32.MessageSigner) (string, error) {
	encoded, err := invoice.Encode(signer)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return encoded, nil
}
