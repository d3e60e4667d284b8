package payident

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payidorg/libpayid-go/amount"
	"github.com/payidorg/libpayid-go/bip70"
	"github.com/payidorg/libpayid-go/bolt11"
	"github.com/payidorg/libpayid-go/openalias"
)

func TestOnchainOutputs_Script(t *testing.T) {
	pi := newIdent(t, testAddr)

	outs, err := pi.OnchainOutputs(amount.Amount{Value: 1234})
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, int64(1234), outs[0].Amount.Value)
	assert.NotEmpty(t, outs[0].Script)
}

func TestOnchainOutputs_MaxSpend(t *testing.T) {
	pi := newIdent(t, testAddr)

	outs, err := pi.OnchainOutputs(amount.Amount{Max: true})
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.True(t, outs[0].Amount.Max)
}

func TestOnchainOutputs_Multiline(t *testing.T) {
	pi := newIdent(t, testAddr+",1.0\n"+testAddr2+",2.0")

	// amt is ignored; the batch fixes its own amounts.
	outs, err := pi.OnchainOutputs(amount.Amount{Value: 1})
	require.NoError(t, err)
	require.Len(t, outs, 2)
	assert.Equal(t, int64(100_000_000), outs[0].Amount.Value)
	assert.Equal(t, int64(200_000_000), outs[1].Amount.Value)
}

func TestOnchainOutputs_Bip21(t *testing.T) {
	pi := newIdent(t, "bitcoin:"+testAddr+"?amount=0.5")

	outs, err := pi.OnchainOutputs(amount.Amount{Value: 50_000_000})
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, int64(50_000_000), outs[0].Amount.Value)
}

func TestOnchainOutputs_LegacyRequest(t *testing.T) {
	pi := newIdent(t, "bitcoin:?r=https://merchant.example/req/1")
	require.NoError(t, pi.Round1(context.Background(), Services{Legacy: &fakeFetcher{
		data: &bip70.RequestData{Outputs: []bip70.Output{
			{Script: []byte{0x51}, AmountSat: 700},
			{Script: []byte{0x52}, AmountSat: 300},
		}},
	}}, nil))

	outs, err := pi.OnchainOutputs(amount.Amount{Value: 999_999})
	require.NoError(t, err)
	require.Len(t, outs, 2)
	assert.Equal(t, int64(700), outs[0].Amount.Value, "requested amounts win over the caller's")
	assert.Equal(t, []byte{0x52}, outs[1].Script)
}

func TestOnchainOutputs_Alias(t *testing.T) {
	pi := newIdent(t, "alice@example.com")

	_, err := pi.OnchainOutputs(amount.Amount{Value: 1})
	require.ErrorIs(t, err, ErrNotOnchain, "unresolved alias has no outputs")

	require.NoError(t, pi.Round1(context.Background(), Services{
		Alias: &fakeAliasResolver{result: &openalias.Result{Address: testAddr, Validated: true}},
	}, nil))

	outs, err := pi.OnchainOutputs(amount.Amount{Value: 42})
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, int64(42), outs[0].Amount.Value)
}

func TestOnchainOutputs_Lightning(t *testing.T) {
	const raw = "lnbc1stub"
	dec := &stubDecoder{invoices: map[string]*bolt11.Invoice{raw: msatInvoice(raw, 21_000)}}
	pi := newIdent(t, raw, WithDecoder(dec))

	_, err := pi.OnchainOutputs(amount.Amount{Value: 21})
	require.ErrorIs(t, err, ErrNotOnchain)
}

func TestHasExpired_Bolt11(t *testing.T) {
	const live, dead = "lnbc1live", "lnbc1dead"
	liveInv := msatInvoice(live, 21_000)
	liveInv.Timestamp = time.Now()
	liveInv.Expiry = time.Hour
	deadInv := msatInvoice(dead, 21_000)
	deadInv.Timestamp = time.Now().Add(-2 * time.Hour)
	deadInv.Expiry = time.Hour

	dec := &stubDecoder{invoices: map[string]*bolt11.Invoice{live: liveInv, dead: deadInv}}

	assert.False(t, newIdent(t, live, WithDecoder(dec)).HasExpired())
	assert.True(t, newIdent(t, dead, WithDecoder(dec)).HasExpired())
}

func TestHasExpired_LegacyRequest(t *testing.T) {
	pi := newIdent(t, "bitcoin:?r=https://merchant.example/req/1")
	assert.False(t, pi.HasExpired(), "nothing to expire before round 1")

	require.NoError(t, pi.Round1(context.Background(), Services{Legacy: &fakeFetcher{
		data: &bip70.RequestData{Expires: time.Now().Add(-time.Minute).Unix()},
	}}, nil))
	assert.True(t, pi.HasExpired())
}

func TestLightningInvoice(t *testing.T) {
	pi := newIdent(t, testAddr)
	_, ok := pi.LightningInvoice()
	assert.False(t, ok)

	const raw = "lnbc1stub"
	dec := &stubDecoder{invoices: map[string]*bolt11.Invoice{raw: msatInvoice(raw, 21_000)}}
	pi = newIdent(t, raw, WithDecoder(dec))
	inv, ok := pi.LightningInvoice()
	require.True(t, ok)
	assert.Equal(t, raw, inv)
}
