package payident

import (
	"fmt"
)

// Wallet exposes the capabilities that shape field projection. Only
// Lightning capability matters here: a bitcoin: URI with an embedded
// invoice shows the invoice's fields when the wallet can pay it, the
// on-chain fields otherwise.
type Wallet interface {
	HasLightning() bool
}

// Fields is the flat projection a send form binds to.
type Fields struct {
	// Recipient is the display destination: an address, a payee key, a
	// verified requestor, or "name <address>" for a resolved alias.
	Recipient string

	AmountSat int64
	HasAmount bool
	// AmountRequired is set when the identifier fixes no amount and the
	// user must supply one.
	AmountRequired bool

	Description string

	// Validated reports the outcome of whatever authentication the
	// family carries (DNSSEC for aliases, signature and expiry for
	// legacy requests); HasValidation says whether it applies at all.
	Validated     bool
	HasValidation bool
}

// Fields projects the identifier onto the flat send-form fields. For
// families with remote state it reflects what the completed rounds have
// fetched so far; before round 1 an alias or lnurl pointer projects
// only its recipient.
func (pi *PaymentIdentifier) Fields(w Wallet) (*Fields, error) {
	if pi.data == nil {
		return nil, ErrNotValid
	}

	f := &Fields{}
	switch d := pi.data.(type) {
	case *AliasData:
		if !d.Resolved {
			f.Recipient = d.Key
			return f, nil
		}
		f.Recipient = fmt.Sprintf("%s <%s>", d.Key, d.Address)
		f.Validated = d.Validated
		f.HasValidation = true
		f.AmountRequired = true

	case *Bolt11Data:
		if err := pi.invoiceFields(f, d.Invoice); err != nil {
			return nil, err
		}

	case *LNURLData:
		// Once round 2 has fetched the final invoice, project it the
		// way a bare invoice is projected; the pointer's bounds no
		// longer apply.
		if d.Invoice != "" {
			if err := pi.invoiceFields(f, d.Invoice); err != nil {
				return nil, err
			}
			break
		}
		f.Recipient = "invoice from lnurl"
		if d.Params == nil {
			return f, nil
		}
		f.Description = fmt.Sprintf("lnurl: %s: %s", endpointHost(d.Endpoint), d.Params.MetadataPlaintext)
		f.AmountSat = d.Params.MinSendableSat()
		f.HasAmount = true
		f.AmountRequired = true

	case *Bip21Data:
		if d.Request != nil {
			if d.Request.Err != "" {
				return nil, fmt.Errorf("%w: %s", ErrRequestFailed, d.Request.Err)
			}
			f.Recipient = d.Request.Requestor
			f.AmountSat = d.Request.TotalSat()
			f.HasAmount = true
			f.Description = d.Request.Memo
			f.Validated = !d.Request.HasExpired()
			f.HasValidation = true
			break
		}
		f.Recipient = d.URI.Address
		if d.URI.AmountSat != nil {
			f.AmountSat = *d.URI.AmountSat
			f.HasAmount = true
		} else {
			f.AmountRequired = true
		}
		f.Description = d.URI.Message
		if f.Description == "" {
			f.Description = d.URI.Label
		}
		if d.URI.Lightning != "" && w != nil && w.HasLightning() {
			if err := pi.invoiceFields(f, d.URI.Lightning); err != nil {
				return nil, err
			}
		}

	case *ScriptData:
		f.AmountRequired = true

	case *MultilineData:
		f.AmountSat = d.TotalSat
		f.HasAmount = !d.RequiresFullBalance
	}

	return f, nil
}

// invoiceFields fills f from a bolt11 invoice, overriding whatever the
// outer identifier carried.
func (pi *PaymentIdentifier) invoiceFields(f *Fields, raw string) error {
	inv, err := pi.codec.Decode(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	f.Recipient = inv.PayeePubKey
	f.Description = inv.Description
	if sat, ok := inv.AmountSat(); ok {
		f.AmountSat = sat
		f.HasAmount = true
		f.AmountRequired = false
	} else {
		f.AmountSat = 0
		f.HasAmount = false
		f.AmountRequired = true
	}
	return nil
}
