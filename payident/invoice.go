package payident

import (
	"fmt"
	"time"

	"github.com/payidorg/libpayid-go/address"
	"github.com/payidorg/libpayid-go/amount"
)

// OnchainOutputs returns the outputs an on-chain payment of this
// identifier should create. Families that fix their own amounts (a
// fetched legacy request, a batch) ignore amt; the single-destination
// families apply it.
func (pi *PaymentIdentifier) OnchainOutputs(amt amount.Amount) ([]Output, error) {
	switch d := pi.data.(type) {
	case *Bip21Data:
		if d.Request != nil {
			outs := make([]Output, 0, len(d.Request.Outputs))
			for _, o := range d.Request.Outputs {
				outs = append(outs, Output{Script: o.Script, Amount: amount.Amount{Value: o.AmountSat}})
			}
			return outs, nil
		}
		script, err := pi.uriScript(d)
		if err != nil {
			return nil, err
		}
		return []Output{{Script: script, Amount: amt}}, nil

	case *MultilineData:
		return d.Outputs, nil

	case *ScriptData:
		return []Output{{Script: d.Script, Amount: amt}}, nil

	case *AliasData:
		if !d.Resolved {
			return nil, fmt.Errorf("%w: alias not resolved", ErrNotOnchain)
		}
		return []Output{{Script: d.Script, Amount: amt}}, nil
	}
	return nil, ErrNotOnchain
}

// uriScript converts the URI's address into an output script.
func (pi *PaymentIdentifier) uriScript(d *Bip21Data) ([]byte, error) {
	if d.URI.Address == "" {
		return nil, fmt.Errorf("%w: URI has no address", ErrNotOnchain)
	}
	return address.ToScript(d.URI.Address, pi.cfg.Params())
}

// IsLightning reports whether the identifier can be paid over
// Lightning in its current state.
func (pi *PaymentIdentifier) IsLightning() bool {
	_, ok := pi.LightningInvoice()
	return ok
}

// LightningInvoice returns the bolt11 invoice to pay: the identifier
// itself for the invoice family, the round-2 result for a pointer.
func (pi *PaymentIdentifier) LightningInvoice() (string, bool) {
	switch d := pi.data.(type) {
	case *Bolt11Data:
		return d.Invoice, true
	case *LNURLData:
		if d.Invoice != "" {
			return d.Invoice, true
		}
	}
	return "", false
}

// HasExpired reports whether the identifier's payable window has
// closed: a fetched legacy request past its expiry, or a bolt11 invoice
// past timestamp+expiry.
func (pi *PaymentIdentifier) HasExpired() bool {
	switch d := pi.data.(type) {
	case *Bip21Data:
		return d.Request != nil && d.Request.HasExpired()
	case *Bolt11Data:
		return pi.invoiceExpired(d.Invoice)
	case *LNURLData:
		if d.Invoice != "" {
			return pi.invoiceExpired(d.Invoice)
		}
	}
	return false
}

func (pi *PaymentIdentifier) invoiceExpired(raw string) bool {
	inv, err := pi.codec.Decode(raw)
	if err != nil {
		return false
	}
	return time.Now().After(inv.Timestamp.Add(inv.Expiry))
}
