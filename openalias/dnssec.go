package openalias

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/miekg/dns"
)

const (
	// defaultUpstream is the default recursive resolver for queries.
	defaultUpstream = "8.8.8.8:53"

	// queryTimeout is the per-query timeout.
	queryTimeout = 10 * time.Second

	// edns0BufSize is the EDNS0 UDP buffer size.
	edns0BufSize = 4096
)

// exchangeFunc performs one DNS exchange; swapped out in tests.
type exchangeFunc func(ctx context.Context, msg *dns.Msg, upstream string) (*dns.Msg, error)

// Resolver resolves OpenAlias TXT records through a recursive
// resolver that performs DNSSEC validation. The AD (Authenticated
// Data) flag in the response decides the Validated field of results.
type Resolver struct {
	upstream string
	params   *chaincfg.Params
	exchange exchangeFunc
}

// NewResolver creates a Resolver for the given network. If upstream is
// empty it defaults to "8.8.8.8:53".
func NewResolver(upstream string, params *chaincfg.Params) *Resolver {
	if upstream == "" {
		upstream = defaultUpstream
	}
	return &Resolver{
		upstream: upstream,
		params:   params,
		exchange: defaultExchange,
	}
}

// defaultExchange sends msg to upstream over UDP with the DNSSEC OK
// flag set.
func defaultExchange(ctx context.Context, msg *dns.Msg, upstream string) (*dns.Msg, error) {
	client := &dns.Client{Timeout: queryTimeout}
	resp, _, err := client.ExchangeContext(ctx, msg, upstream)
	return resp, err
}

// lookupTXT queries TXT records for name and reports whether the
// answer carried the AD flag.
func (r *Resolver) lookupTXT(ctx context.Context, name string) ([]string, bool, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeTXT)
	msg.RecursionDesired = true
	msg.SetEdns0(edns0BufSize, true) // DO (DNSSEC OK) flag

	resp, err := r.exchange(ctx, msg, r.upstream)
	if err != nil {
		return nil, false, fmt.Errorf("%w: TXT %s: %v", ErrLookupFailed, name, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, false, fmt.Errorf("%w: TXT %s: rcode %s",
			ErrLookupFailed, name, dns.RcodeToString[resp.Rcode])
	}

	var txts []string
	for _, rr := range resp.Answer {
		if txt, ok := rr.(*dns.TXT); ok {
			// TXT records may be split into multiple strings; join them.
			txts = append(txts, strings.Join(txt.Txt, ""))
		}
	}
	if len(txts) == 0 {
		return nil, false, fmt.Errorf("%w: no TXT records for %s", ErrNoRecord, name)
	}

	return txts, resp.AuthenticatedData, nil
}
