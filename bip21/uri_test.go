package bip21

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payidorg/libpayid-go/bolt11"
)

const (
	testAddr    = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
	testAddrSW  = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
	testBadAddr = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNb"
)

var params = &chaincfg.MainNetParams

// stubDecoder returns a canned invoice or error; the real codec is
// exercised in the bolt11 package.
type stubDecoder struct {
	inv *bolt11.Invoice
	err error
}

func (s stubDecoder) Decode(string) (*bolt11.Invoice, error) { return s.inv, s.err }

func msatInvoice(sat int64, fallback string) *bolt11.Invoice {
	msat := sat * 1000
	return &bolt11.Invoice{AmountMilliSat: &msat, FallbackAddress: fallback}
}

func TestDecode_BareAddress(t *testing.T) {
	u, err := Decode(testAddr, params, nil)
	require.NoError(t, err)
	assert.Equal(t, testAddr, u.Address)
	assert.Nil(t, u.AmountSat)
}

func TestDecode_BareAddress_Invalid(t *testing.T) {
	_, err := Decode("notanaddress", params, nil)
	require.ErrorIs(t, err, ErrNotURI)
}

func TestDecode_Basic(t *testing.T) {
	u, err := Decode("bitcoin:"+testAddr+"?amount=0.00005&message=coffee&label=shop", params, nil)
	require.NoError(t, err)
	assert.Equal(t, testAddr, u.Address)
	require.NotNil(t, u.AmountSat)
	assert.Equal(t, int64(5000), *u.AmountSat)
	assert.Equal(t, "coffee", u.Message)
	assert.Equal(t, "coffee", u.Memo)
	assert.Equal(t, "shop", u.Label)
}

func TestDecode_SchemeCaseInsensitive(t *testing.T) {
	u, err := Decode("BitCoin:"+testAddr, params, nil)
	require.NoError(t, err)
	assert.Equal(t, testAddr, u.Address)
}

func TestDecode_WrongScheme(t *testing.T) {
	_, err := Decode("litecoin:"+testAddr, params, nil)
	require.ErrorIs(t, err, ErrNotURI)
}

func TestDecode_DuplicateKey(t *testing.T) {
	_, err := Decode("bitcoin:"+testAddr+"?amount=1&amount=2", params, nil)
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestDecode_InvalidAddressInURI(t *testing.T) {
	_, err := Decode("bitcoin:"+testBadAddr+"?amount=1", params, nil)
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestDecode_EmptyAddressAllowed(t *testing.T) {
	msat := int64(1000)
	dec := stubDecoder{inv: &bolt11.Invoice{AmountMilliSat: &msat}}
	u, err := Decode("bitcoin:?lightning=lnbc...", params, dec)
	require.NoError(t, err)
	assert.Empty(t, u.Address)
	assert.NotNil(t, u.Invoice)
}

func TestDecode_AmountForms(t *testing.T) {
	tests := []struct {
		name string
		amt  string
		want int64
	}{
		{"whole coin", "1", 100_000_000},
		{"fraction", "0.00005", 5000},
		{"exponent whole-coin scale", "1X8", 100_000_000},
		{"exponent sub-unit scale", "123X5", 12_300_000},
		{"exponent fraction", "0.1X9", 100_000_000},
		{"exponent trailing chars ignored", "1X85", 100_000_000},
		{"supply cap exactly", "21000000", 2_100_000_000_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Decode("bitcoin:"+testAddr+"?amount="+tt.amt, params, nil)
			require.NoError(t, err)
			require.NotNil(t, u.AmountSat)
			assert.Equal(t, tt.want, *u.AmountSat)
		})
	}
}

func TestDecode_AmountErrors(t *testing.T) {
	tests := []struct {
		name    string
		amt     string
		wantErr error
	}{
		{"non-numeric", "xyz", ErrInvalidField},
		{"two dots", "1.2.3", ErrInvalidField},
		{"above supply cap", "21000001", ErrAmountOutOfRange},
		{"negative", "-1", ErrAmountOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("bitcoin:"+testAddr+"?amount="+tt.amt, params, nil)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_TimeExpSig(t *testing.T) {
	sig := base58.Encode([]byte{0xde, 0xad, 0xbe, 0xef})
	u, err := Decode("bitcoin:"+testAddr+"?time=1700000000&exp=3600&sig="+sig, params, nil)
	require.NoError(t, err)
	require.NotNil(t, u.Time)
	assert.Equal(t, int64(1700000000), *u.Time)
	require.NotNil(t, u.Exp)
	assert.Equal(t, int64(3600), *u.Exp)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, u.Sig)
}

func TestDecode_FieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad time", "time=soon"},
		{"bad exp", "exp=never"},
		{"bad sig", "sig=0OIl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("bitcoin:"+testAddr+"?"+tt.query, params, nil)
			require.ErrorIs(t, err, ErrInvalidField)
		})
	}
}

func TestDecode_RequestURLAndExtras(t *testing.T) {
	u, err := Decode("bitcoin:"+testAddr+"?r=https%3A%2F%2Fpay.example.com%2Freq%2F1&custom=x", params, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/req/1", u.RequestURL)
	assert.Equal(t, "x", u.Extras["custom"])
}

func TestDecode_LightningConsistency(t *testing.T) {
	tests := []struct {
		name    string
		amt     string // URI amount in whole coins
		inv     *bolt11.Invoice
		wantErr error
	}{
		{"amounts equal", "0.00005", msatInvoice(5000, ""), nil},
		{"one sat leeway accepted", "0.00005001", msatInvoice(5000, ""), nil},
		{"two sats rejected", "0.00005002", msatInvoice(5000, ""), ErrInconsistentAmount},
		{"no plain amount", "", msatInvoice(5000, ""), nil},
		{"fallback matches", "", msatInvoice(0, testAddr), nil},
		{"fallback differs", "", msatInvoice(0, testAddrSW), ErrInconsistentAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri := "bitcoin:" + testAddr + "?lightning=lnbc..."
			if tt.amt != "" {
				uri += "&amount=" + tt.amt
			}
			u, err := Decode(uri, params, stubDecoder{inv: tt.inv})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "lnbc...", u.Lightning)
			assert.NotNil(t, u.Invoice)
		})
	}
}

func TestDecode_LightningDecodeFailure(t *testing.T) {
	dec := stubDecoder{err: bolt11.ErrDecode}
	_, err := Decode("bitcoin:"+testAddr+"?lightning=garbage", params, dec)
	require.ErrorIs(t, err, ErrInvalidField)
}

func TestEncode_Decode_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		sats    int64
		message string
	}{
		{"address only", testAddr, 0, ""},
		{"with amount", testAddr, 5000, ""},
		{"with message", testAddrSW, 0, "hello world"},
		{"amount and message", testAddr, 150_000_000, "rent & utilities"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := Encode(tt.addr, tt.sats, tt.message, nil, params)
			require.NoError(t, err)

			u, err := Decode(uri, params, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.addr, u.Address)
			if tt.sats > 0 {
				require.NotNil(t, u.AmountSat)
				assert.Equal(t, tt.sats, *u.AmountSat)
			} else {
				assert.Nil(t, u.AmountSat)
			}
			assert.Equal(t, tt.message, u.Message)
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode("bogus", 0, "", nil, params)
	require.ErrorIs(t, err, ErrInvalidAddress)

	_, err = Encode(testAddr, 0, "", map[string]string{"bad key": "v"}, params)
	require.ErrorIs(t, err, ErrInvalidField)
}
