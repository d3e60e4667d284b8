// Package payident classifies free-form payment text into one of the
// known identifier families and drives the network rounds that turn a
// pointer into something payable.
//
// Classification is synchronous and offline. Families that reference
// remote state (an alias, a legacy payment-request URL, an lnurl
// pointer) go through up to three explicit resolution rounds, each an
// ordinary blocking call the caller runs on whatever goroutine it
// likes. A later identifier supersedes an earlier one: bumping the
// generation makes any in-flight round discard its result instead of
// mutating stale state.
package payident

import (
	"sync/atomic"

	"github.com/payidorg/libpayid-go/amount"
	"github.com/payidorg/libpayid-go/bip21"
	"github.com/payidorg/libpayid-go/bip70"
	"github.com/payidorg/libpayid-go/bolt11"
	"github.com/payidorg/libpayid-go/contacts"
	"github.com/payidorg/libpayid-go/lnurl"
	"github.com/payidorg/libpayid-go/logger"
)

// Kind is the identifier family. The zero value is KindInvalid.
type Kind int

const (
	KindInvalid Kind = iota
	KindMultiline
	KindBolt11
	KindLNURL
	KindBip21
	KindScript
	KindAlias
)

// String returns the family name.
func (k Kind) String() string {
	switch k {
	case KindMultiline:
		return "multiline"
	case KindBolt11:
		return "bolt11"
	case KindLNURL:
		return "lnurl"
	case KindBip21:
		return "bip21"
	case KindScript:
		return "script"
	case KindAlias:
		return "alias"
	default:
		return "invalid"
	}
}

// familyData is the per-family payload. Exactly one variant is set on a
// valid identifier; an invalid identifier carries none.
type familyData interface {
	kind() Kind
}

// Output is one on-chain payment output.
type Output struct {
	Script []byte
	Amount amount.Amount
}

// LineError records one failed line of a batch.
type LineError struct {
	Index int // position among non-empty lines, 0-based
	Line  string
	Err   error
}

// MultilineData is a parsed "address,amount" batch.
type MultilineData struct {
	Outputs []Output
	Errors  []LineError
	// RequiresFullBalance is set when any output uses the max-spend
	// token; TotalSat then covers only the fixed-amount outputs.
	RequiresFullBalance bool
	TotalSat            int64
}

func (*MultilineData) kind() Kind { return KindMultiline }

// Bolt11Data is a bare Lightning invoice.
type Bolt11Data struct {
	Invoice string
}

func (*Bolt11Data) kind() Kind { return KindBolt11 }

// LNURLData is an lnurl-pay pointer. Params is filled by round 1,
// Invoice by round 2.
type LNURLData struct {
	Raw      string // the bech32 pointer, lowercased
	Endpoint string // decoded https endpoint
	Params   *lnurl.PayParams
	Invoice  string
}

func (*LNURLData) kind() Kind { return KindLNURL }

// Bip21Data is a decoded bitcoin: URI. When the URI carries a legacy
// payment-request URL, Request is filled by round 1 and Acked is set by
// round 3.
type Bip21Data struct {
	URI        *bip21.URI
	RequestURL string
	Request    *bip70.RequestData
	Acked      bool
}

func (*Bip21Data) kind() Kind { return KindBip21 }

// ScriptData is a bare address or raw output script.
type ScriptData struct {
	Script []byte
}

func (*ScriptData) kind() Kind { return KindScript }

// AliasData is an email-shaped alias. The remaining fields are filled
// by round 1.
type AliasData struct {
	Key       string
	Address   string
	Name      string
	Validated bool // DNSSEC chain verified
	Script    []byte
	Resolved  bool
}

func (*AliasData) kind() Kind { return KindAlias }

// ContactBook persists resolved aliases. *contacts.Store satisfies it.
type ContactBook interface {
	Put(key string, c contacts.Contact) error
}

// PaymentIdentifier is one piece of classified payment text plus the
// state its resolution rounds have accumulated.
type PaymentIdentifier struct {
	cfg      Config
	log      logger.Logger
	codec    bolt11.Decoder
	contacts ContactBook

	text    string
	data    familyData
	err     error
	warning string

	gen atomic.Uint64
}

// Option configures a PaymentIdentifier at construction.
type Option func(*PaymentIdentifier)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logger.Logger) Option {
	return func(pi *PaymentIdentifier) { pi.log = log }
}

// WithDecoder overrides the Lightning invoice decoder.
func WithDecoder(dec bolt11.Decoder) Option {
	return func(pi *PaymentIdentifier) { pi.codec = dec }
}

// WithContacts sets the contact book resolved aliases are saved to.
func WithContacts(book ContactBook) Option {
	return func(pi *PaymentIdentifier) { pi.contacts = book }
}

// New classifies text under cfg. Classification never fails: an
// unrecognized input yields a valid *PaymentIdentifier whose Kind is
// KindInvalid and whose Err explains why. New itself errors only on a
// bad Config.
func New(cfg Config, text string, opts ...Option) (*PaymentIdentifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pi := &PaymentIdentifier{
		cfg:  cfg,
		log:  logger.Noop{},
		text: text,
	}
	for _, opt := range opts {
		opt(pi)
	}
	if pi.codec == nil {
		pi.codec = bolt11.NewCodec(cfg.Params())
	}
	pi.classify()
	return pi, nil
}

// Text returns the original input, untrimmed.
func (pi *PaymentIdentifier) Text() string { return pi.text }

// Kind returns the identifier family.
func (pi *PaymentIdentifier) Kind() Kind {
	if pi.data == nil {
		return KindInvalid
	}
	return pi.data.kind()
}

// IsValid reports whether classification matched a family.
func (pi *PaymentIdentifier) IsValid() bool { return pi.data != nil }

// Err returns the classification or resolution error, if any. An empty
// input is invalid with a nil Err.
func (pi *PaymentIdentifier) Err() error { return pi.err }

// Warning returns a non-fatal advisory, such as an alias that resolved
// without DNSSEC validation.
func (pi *PaymentIdentifier) Warning() string { return pi.warning }

// Multiline returns the batch payload when Kind is KindMultiline.
func (pi *PaymentIdentifier) Multiline() (*MultilineData, bool) {
	d, ok := pi.data.(*MultilineData)
	return d, ok
}

// Bolt11 returns the invoice payload when Kind is KindBolt11.
func (pi *PaymentIdentifier) Bolt11() (*Bolt11Data, bool) {
	d, ok := pi.data.(*Bolt11Data)
	return d, ok
}

// LNURL returns the pointer payload when Kind is KindLNURL.
func (pi *PaymentIdentifier) LNURL() (*LNURLData, bool) {
	d, ok := pi.data.(*LNURLData)
	return d, ok
}

// Bip21 returns the URI payload when Kind is KindBip21.
func (pi *PaymentIdentifier) Bip21() (*Bip21Data, bool) {
	d, ok := pi.data.(*Bip21Data)
	return d, ok
}

// Script returns the script payload when Kind is KindScript.
func (pi *PaymentIdentifier) Script() (*ScriptData, bool) {
	d, ok := pi.data.(*ScriptData)
	return d, ok
}

// Alias returns the alias payload when Kind is KindAlias.
func (pi *PaymentIdentifier) Alias() (*AliasData, bool) {
	d, ok := pi.data.(*AliasData)
	return d, ok
}

// Supersede marks this identifier as replaced. Any round still in
// flight observes the generation change and discards its result.
func (pi *PaymentIdentifier) Supersede() {
	pi.gen.Add(1)
}

// stale reports whether the identifier was superseded after gen was
// captured.
func (pi *PaymentIdentifier) stale(gen uint64) bool {
	return pi.gen.Load() != gen
}
