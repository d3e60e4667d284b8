package payident

import (
	"context"
	"fmt"
	"net/url"

	"github.com/payidorg/libpayid-go/address"
	"github.com/payidorg/libpayid-go/bip70"
	"github.com/payidorg/libpayid-go/contacts"
	"github.com/payidorg/libpayid-go/lnurl"
	"github.com/payidorg/libpayid-go/openalias"
)

// AliasResolver resolves an email-shaped alias to an address.
// *openalias.Resolver satisfies it.
type AliasResolver interface {
	Resolve(ctx context.Context, key string) (*openalias.Result, error)
}

// PointerClient performs lnurl-pay round trips. *lnurl.Client
// satisfies it.
type PointerClient interface {
	FetchPayParams(ctx context.Context, endpoint string) (*lnurl.PayParams, error)
	FetchInvoice(ctx context.Context, callback string, amountMsat int64, comment string) (string, error)
}

// Services bundles the network collaborators the resolution rounds
// call out to. Only the ones a given identifier family needs must be
// set.
type Services struct {
	Alias   AliasResolver
	Legacy  bip70.Fetcher
	Pointer PointerClient
}

// NeedsRound1 reports whether the identifier references remote state
// that round 1 must fetch before fields or outputs are complete.
func (pi *PaymentIdentifier) NeedsRound1() bool {
	switch d := pi.data.(type) {
	case *AliasData:
		return !d.Resolved
	case *Bip21Data:
		return d.RequestURL != "" && d.Request == nil
	case *LNURLData:
		return d.Params == nil
	}
	return false
}

// NeedsRound2 reports whether an amount-bearing invoice must still be
// fetched. Only lnurl pointers have a round 2.
func (pi *PaymentIdentifier) NeedsRound2() bool {
	d, ok := pi.data.(*LNURLData)
	return ok && d.Params != nil && d.Invoice == ""
}

// NeedsRound3 reports whether a post-payment acknowledgement exchange
// is still pending. Only legacy payment requests have a round 3.
func (pi *PaymentIdentifier) NeedsRound3() bool {
	d, ok := pi.data.(*Bip21Data)
	return ok && d.Request != nil && !d.Acked
}

// Round1 resolves the identifier's remote reference: the alias's TXT
// record, the legacy payment request behind the URI's request URL, or
// the lnurl pointer's pay parameters. onSuccess, if non-nil, runs after
// the identifier has been updated. A result arriving after Supersede is
// discarded and reported as ErrSuperseded.
func (pi *PaymentIdentifier) Round1(ctx context.Context, svc Services, onSuccess func(*PaymentIdentifier)) error {
	if !pi.NeedsRound1() {
		return fmt.Errorf("%w: round 1", ErrRoundState)
	}
	gen := pi.gen.Load()

	switch d := pi.data.(type) {
	case *AliasData:
		if svc.Alias == nil {
			return fmt.Errorf("%w: alias resolver", ErrNoService)
		}
		res, err := svc.Alias.Resolve(ctx, d.Key)
		if err != nil {
			return fmt.Errorf("%w: resolving %q: %v", ErrNetwork, d.Key, err)
		}
		if pi.stale(gen) {
			return ErrSuperseded
		}
		script, err := address.ToScript(res.Address, pi.cfg.Params())
		if err != nil {
			pi.err = fmt.Errorf("%w: alias %q resolved to bad address %q", ErrProtocolViolation, d.Key, res.Address)
			return pi.err
		}
		d.Address = res.Address
		d.Name = res.Name
		d.Validated = res.Validated
		d.Script = script
		d.Resolved = true
		if !res.Validated {
			pi.warning = fmt.Sprintf("alias %q resolved without DNSSEC validation; the address may be spoofed", d.Key)
		}
		if pi.contacts != nil {
			err := pi.contacts.Put(d.Key, contacts.Contact{
				Type:    contacts.TypeOpenAlias,
				Name:    d.Name,
				Address: d.Address,
			})
			if err != nil {
				pi.log.Warn("saving contact failed", map[string]any{"key": d.Key, "err": err.Error()})
			}
		}
		pi.log.Info("alias resolved", map[string]any{"key": d.Key, "address": d.Address, "validated": d.Validated})

	case *Bip21Data:
		if svc.Legacy == nil {
			return fmt.Errorf("%w: payment request fetcher", ErrNoService)
		}
		req, err := svc.Legacy.Fetch(ctx, d.RequestURL)
		if err != nil {
			return fmt.Errorf("%w: fetching payment request: %v", ErrNetwork, err)
		}
		if pi.stale(gen) {
			return ErrSuperseded
		}
		d.Request = req
		pi.log.Info("payment request fetched", map[string]any{
			"url":       d.RequestURL,
			"requestor": req.Requestor,
			"total_sat": req.TotalSat(),
		})

	case *LNURLData:
		if svc.Pointer == nil {
			return fmt.Errorf("%w: lnurl client", ErrNoService)
		}
		params, err := svc.Pointer.FetchPayParams(ctx, d.Endpoint)
		if err != nil {
			return fmt.Errorf("%w: fetching pay params: %v", ErrNetwork, err)
		}
		if pi.stale(gen) {
			return ErrSuperseded
		}
		d.Params = params
		pi.log.Info("pay params fetched", map[string]any{
			"endpoint": d.Endpoint,
			"min_sat":  params.MinSendableSat(),
			"max_sat":  params.MaxSendableSat(),
		})
	}

	if onSuccess != nil {
		onSuccess(pi)
	}
	return nil
}

// Round2 fetches an invoice for amountSat from the lnurl callback. The
// amount must be inside the bounds reported by round 1, inclusive. The
// comment is dropped silently when the service does not accept one of
// that length. The returned invoice must carry exactly the requested
// amount; anything else is a protocol violation and the invoice is
// rejected.
func (pi *PaymentIdentifier) Round2(ctx context.Context, svc Services, amountSat int64, comment string, onSuccess func(*PaymentIdentifier)) error {
	if !pi.NeedsRound2() {
		return fmt.Errorf("%w: round 2", ErrRoundState)
	}
	if svc.Pointer == nil {
		return fmt.Errorf("%w: lnurl client", ErrNoService)
	}
	d := pi.data.(*LNURLData)

	minSat, maxSat := d.Params.MinSendableSat(), d.Params.MaxSendableSat()
	if amountSat < minSat || amountSat > maxSat {
		return fmt.Errorf("%w: %d sat not in [%d, %d]", ErrAmountRange, amountSat, minSat, maxSat)
	}
	if len(comment) > d.Params.CommentAllowed {
		comment = ""
	}

	gen := pi.gen.Load()
	raw, err := svc.Pointer.FetchInvoice(ctx, d.Params.Callback, amountSat*1000, comment)
	if err != nil {
		return fmt.Errorf("%w: fetching invoice: %v", ErrNetwork, err)
	}
	if pi.stale(gen) {
		return ErrSuperseded
	}

	inv, err := pi.codec.Decode(raw)
	if err != nil {
		pi.err = fmt.Errorf("%w: service returned undecodable invoice: %v", ErrProtocolViolation, err)
		return pi.err
	}
	got, ok := inv.AmountSat()
	if !ok || got != amountSat {
		pi.err = fmt.Errorf("%w: requested %d sat, invoice carries %d", ErrProtocolViolation, amountSat, got)
		return pi.err
	}

	d.Invoice = raw
	pi.log.Info("invoice fetched", map[string]any{"amount_sat": amountSat})
	if onSuccess != nil {
		onSuccess(pi)
	}
	return nil
}

// Round3 submits the broadcast transaction to the payment request's
// payment URL and awaits the acknowledgement. The transaction is
// already on the network by now, so a failure here is reported but
// changes nothing about the payment.
func (pi *PaymentIdentifier) Round3(ctx context.Context, svc Services, rawTx []byte, refundAddress string, onSuccess func(*PaymentIdentifier)) error {
	if !pi.NeedsRound3() {
		return fmt.Errorf("%w: round 3", ErrRoundState)
	}
	if svc.Legacy == nil {
		return fmt.Errorf("%w: payment request fetcher", ErrNoService)
	}
	d := pi.data.(*Bip21Data)

	gen := pi.gen.Load()
	ack, err := svc.Legacy.SendPayment(ctx, d.Request, rawTx, refundAddress)
	if err != nil {
		pi.log.Error("payment ack failed", map[string]any{"err": err.Error()})
		return fmt.Errorf("%w: sending payment: %v", ErrNetwork, err)
	}
	if pi.stale(gen) {
		return ErrSuperseded
	}

	d.Acked = true
	pi.log.Info("payment acknowledged", map[string]any{"accepted": ack.Accepted, "memo": ack.Memo})
	if onSuccess != nil {
		onSuccess(pi)
	}
	return nil
}

// endpointHost extracts the host of an lnurl endpoint for display.
func endpointHost(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	return u.Host
}
