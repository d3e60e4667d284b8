// Package bip70 models legacy signed payment requests: the data a
// wallet fetches from a request reference before paying, and the
// post-payment acknowledgement exchange.
//
// The wire transport (protobuf over HTTP) is an external protocol and
// is injected behind the Fetcher interface; this package owns only the
// data model and its semantics.
package bip70

import (
	"context"
	"time"
)

// Output is one requested payment output.
type Output struct {
	Script    []byte
	AmountSat int64
}

// RequestData is a fetched payment request.
type RequestData struct {
	Outputs []Output
	// Requestor is the verified identity of the request signer, or
	// the serving domain when the request is unsigned.
	Requestor  string
	Memo       string
	Time       int64 // creation, unix seconds
	Expires    int64 // expiry, unix seconds; 0 means no expiry
	PaymentURL string
	// Err carries a request-level failure reported by the request
	// itself (e.g. a failed signature check recorded at fetch time).
	Err string
}

// TotalSat returns the sum of all requested output amounts.
func (d *RequestData) TotalSat() int64 {
	var total int64
	for _, out := range d.Outputs {
		total += out.AmountSat
	}
	return total
}

// HasExpired reports whether the request's expiry time has passed.
func (d *RequestData) HasExpired() bool {
	return d.Expires > 0 && time.Now().Unix() > d.Expires
}

// Ack is the endpoint's response to a submitted payment.
type Ack struct {
	Accepted bool
	Memo     string
}

// Fetcher performs the network side of the legacy payment-request
// protocol. Implementations live outside this module; the resolution
// engine only awaits them.
type Fetcher interface {
	// Fetch retrieves and verifies the payment request behind a
	// request reference URL (round 1).
	Fetch(ctx context.Context, requestURL string) (*RequestData, error)

	// SendPayment submits the broadcast transaction and a refund
	// address to the request's payment URL and awaits the
	// acknowledgement (round 3).
	SendPayment(ctx context.Context, data *RequestData, rawTx []byte, refundAddress string) (*Ack, error)
}
