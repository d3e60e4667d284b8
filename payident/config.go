package payident

import "github.com/btcsuite/btcd/chaincfg"

// validDecimalPoints lists the accepted display units: satoshi, bits,
// mBTC and whole coins.
var validDecimalPoints = map[int]bool{
	0: true,
	2: true,
	5: true,
	8: true,
}

// Config carries the wallet settings classification depends on.
type Config struct {
	// Network selects the chain parameters used for address
	// validation: "mainnet", "testnet" or "regtest".
	Network string

	// DecimalPoint is the exponent of the wallet's display unit
	// relative to satoshis (8 = whole coins).
	DecimalPoint int
}

// DefaultConfig returns mainnet with whole-coin amounts.
func DefaultConfig() Config {
	return Config{Network: "mainnet", DecimalPoint: 8}
}

// Validate checks that all configuration values are acceptable and
// returns the first error encountered, or nil if valid.
func (c Config) Validate() error {
	if c.Network != "mainnet" && c.Network != "testnet" && c.Network != "regtest" {
		return ErrInvalidNetwork
	}
	if !validDecimalPoints[c.DecimalPoint] {
		return ErrInvalidDecimalPoint
	}
	return nil
}

// Params returns the chain parameters for the configured network.
func (c Config) Params() *chaincfg.Params {
	switch c.Network {
	case "testnet":
		return &chaincfg.TestNet3Params
	case "regtest":
		return &chaincfg.RegressionNetParams
	default:
		return &chaincfg.MainNetParams
	}
}
