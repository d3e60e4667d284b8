package payident

import (
	"fmt"
	"strings"

	"github.com/payidorg/libpayid-go/address"
	"github.com/payidorg/libpayid-go/amount"
)

// parseMultiline parses text as an "address,amount" batch, one output
// per non-empty line. It returns nil when no line parses, in which case
// classification falls through to the single-identifier grammars.
// Failed lines of a batch that does parse are recorded, not fatal.
func (pi *PaymentIdentifier) parseMultiline(text string) *MultilineData {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	data := &MultilineData{}
	for i, line := range lines {
		out, err := pi.parseLine(line)
		if err != nil {
			data.Errors = append(data.Errors, LineError{
				Index: i,
				Line:  strings.TrimSpace(line),
				Err:   err,
			})
			continue
		}
		data.Outputs = append(data.Outputs, out)
		if out.Amount.Max {
			data.RequiresFullBalance = true
		} else {
			data.TotalSat += out.Amount.Value
		}
	}
	if len(data.Outputs) == 0 {
		return nil
	}
	return data
}

// parseLine parses one batch line: "<destination>,<amount>". The
// destination is an address or raw script, the amount is in the
// configured display unit or the max-spend token.
func (pi *PaymentIdentifier) parseLine(line string) (Output, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 2 {
		return Output{}, fmt.Errorf("%w: expected \"destination,amount\"", ErrParse)
	}

	script, err := address.ParseRecipient(strings.TrimSpace(parts[0]), pi.cfg.Params())
	if err != nil {
		return Output{}, err
	}

	amt, err := amount.Parse(strings.TrimSpace(parts[1]), pi.cfg.DecimalPoint)
	if err != nil {
		return Output{}, err
	}
	return Output{Script: script, Amount: amt}, nil
}
