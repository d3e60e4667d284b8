package address

import (
	"encoding/hex"
	"fmt"
	"strings"

	sdkscript "github.com/bsv-blockchain/go-sdk/script"
)

// ParseScript parses a manual script expression into raw script bytes.
// The expression is whitespace-separated tokens: OP_* opcode names and
// hex strings, the latter encoded as minimal data pushes.
func ParseScript(expr string) ([]byte, error) {
	fields := strings.Fields(expr)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidScript)
	}

	// Pre-check tokens so a plain address never reaches the ASM parser
	// looking like a malformed hex push.
	for _, tok := range fields {
		if strings.HasPrefix(tok, "OP_") {
			continue
		}
		if _, err := hex.DecodeString(tok); err != nil {
			return nil, fmt.Errorf("%w: token %q is neither an opcode nor hex", ErrInvalidScript, tok)
		}
	}

	s, err := sdkscript.NewFromASM(strings.Join(fields, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	return []byte(*s), nil
}
