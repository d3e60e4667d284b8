package payident

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/payidorg/libpayid-go/address"
	"github.com/payidorg/libpayid-go/bip21"
	"github.com/payidorg/libpayid-go/lnurl"
)

// maxEchoLen caps how many characters of unrecognized input are echoed
// in errors.
const maxEchoLen = 100

// emailRE matches an email-shaped alias at the start of the input.
var emailRE = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,7}\b`)

// classify assigns the identifier family. Precedence: batch, Lightning
// (pointer or invoice), bitcoin: URI, bare destination, alias. Anything
// else is invalid with an error; an empty input is invalid without one.
func (pi *PaymentIdentifier) classify() {
	text := strings.TrimSpace(pi.text)
	if text == "" {
		return
	}

	if ml := pi.parseMultiline(text); ml != nil {
		pi.data = ml
		if n := len(ml.Errors); n > 0 {
			pi.err = fmt.Errorf("%w: %d line(s) failed", ErrParse, n)
		}
		pi.log.Debug("classified", map[string]any{"kind": pi.Kind().String(), "outputs": len(ml.Outputs)})
		return
	}

	if ln, ok := extractLightning(text); ok {
		if strings.HasPrefix(ln, "lnurl") {
			endpoint, err := lnurl.Decode(ln)
			if err != nil {
				pi.err = fmt.Errorf("%w: %v", ErrParse, err)
				return
			}
			pi.data = &LNURLData{Raw: ln, Endpoint: endpoint}
		} else {
			if _, err := pi.codec.Decode(ln); err != nil {
				pi.err = fmt.Errorf("%w: %v", ErrParse, err)
				return
			}
			pi.data = &Bolt11Data{Invoice: ln}
		}
		pi.log.Debug("classified", map[string]any{"kind": pi.Kind().String()})
		return
	}

	if strings.HasPrefix(strings.ToLower(text), bip21.Scheme+":") {
		u, err := bip21.Decode(text, pi.cfg.Params(), pi.codec)
		if err != nil {
			pi.err = fmt.Errorf("%w: %v", ErrParse, err)
			return
		}
		pi.data = &Bip21Data{URI: u, RequestURL: u.RequestURL}
		pi.log.Debug("classified", map[string]any{"kind": pi.Kind().String(), "request_url": u.RequestURL})
		return
	}

	if script, err := address.ParseRecipient(text, pi.cfg.Params()); err == nil {
		pi.data = &ScriptData{Script: script}
		pi.log.Debug("classified", map[string]any{"kind": pi.Kind().String()})
		return
	}

	if emailRE.MatchString(text) {
		pi.data = &AliasData{Key: text}
		pi.log.Debug("classified", map[string]any{"kind": pi.Kind().String(), "key": text})
		return
	}

	echo := text
	if runes := []rune(echo); len(runes) > maxEchoLen {
		echo = string(runes[:maxEchoLen]) + "..."
	}
	pi.err = fmt.Errorf("%w: %q", ErrUnknownIdentifier, echo)
}

// extractLightning pulls a Lightning payload out of text: a bolt11
// invoice or an lnurl pointer, with or without the lightning: prefix.
// The returned payload is lowercased.
func extractLightning(text string) (string, bool) {
	data := strings.ToLower(strings.TrimSpace(text))
	if strings.HasPrefix(data, "lightning:ln") {
		data = strings.TrimPrefix(data, "lightning:")
	}
	if strings.HasPrefix(data, "ln") {
		return data, true
	}
	return "", false
}
