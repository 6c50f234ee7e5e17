package witness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("123.45", 2)
	require.NoError(t, err)
	require.EqualValues(t, 12345, v)

	_, err = ParseAmount("1.005", 2)
	require.Error(t, err)

	_, err = ParseAmount("-1", 0)
	require.Error(t, err)
}

// buildMatchedRing constructs one ring where orderA and orderB exactly
// clear each other's full amountS, with the given account ids and keys,
// the seed suite's scenario 1 (single-ring happy path).
func buildMatchedRing(t *testing.T, dexID, orderIDA, orderIDB uint64, privA, privB *signer, accSellA, accBuyA, accFeeA, accSellB, accBuyB, accFeeB uint64) Ring {
	t.Helper()
	h := newNativeHasher()

	orderA := &Order{
		DexID: dexID, OrderID: orderIDA,
		AccountS: accSellA, AccountB: accBuyA, AccountF: accFeeA,
		AmountS: 1_000_000, AmountB: 50_000_000, AmountF: 100,
		TokenS: tokenBTC, TokenB: tokenUSDT, TokenF: tokenUSDT,
	}
	require.NoError(t, orderA.Sign(privA.key, h, newHashFunc()))

	orderB := &Order{
		DexID: dexID, OrderID: orderIDB,
		AccountS: accSellB, AccountB: accBuyB, AccountF: accFeeB,
		AmountS: 50_000_000, AmountB: 1_000_000, AmountF: 100,
		TokenS: tokenUSDT, TokenB: tokenBTC, TokenF: tokenUSDT,
	}
	require.NoError(t, orderB.Sign(privB.key, h, newHashFunc()))

	return Ring{
		OrderA: orderA, OrderB: orderB,
		FillSA: 1_000_000, FillBA: 50_000_000, FillFA: 100,
		FillSB: 50_000_000, FillBB: 1_000_000, FillFB: 100,
	}
}

const (
	tokenBTC  = 1
	tokenUSDT = 2
)

type signer struct{ key privateKey }

func newSigner(t *testing.T) *signer {
	t.Helper()
	priv, err := NewSigningKey()
	require.NoError(t, err)
	return &signer{key: priv}
}

func TestBuilderTwoRingHappyPath(t *testing.T) {
	s1, s2, s3, s4 := newSigner(t), newSigner(t), newSigner(t), newSigner(t)

	accounts := []*Account{
		{ID: 1, PubKey: s1.key.PublicKey, Token: tokenBTC, Balance: 1_000_000},
		{ID: 2, PubKey: s1.key.PublicKey, Token: tokenUSDT, Balance: 0},
		{ID: 3, PubKey: s1.key.PublicKey, Token: tokenUSDT, Balance: 1_000},
		{ID: 4, PubKey: s2.key.PublicKey, Token: tokenUSDT, Balance: 50_000_000},
		{ID: 5, PubKey: s2.key.PublicKey, Token: tokenBTC, Balance: 0},
		{ID: 6, PubKey: s2.key.PublicKey, Token: tokenUSDT, Balance: 1_000},
		{ID: 7, PubKey: s3.key.PublicKey, Token: tokenBTC, Balance: 1_000_000},
		{ID: 8, PubKey: s3.key.PublicKey, Token: tokenUSDT, Balance: 0},
		{ID: 9, PubKey: s3.key.PublicKey, Token: tokenUSDT, Balance: 1_000},
		{ID: 10, PubKey: s4.key.PublicKey, Token: tokenUSDT, Balance: 50_000_000},
		{ID: 11, PubKey: s4.key.PublicKey, Token: tokenBTC, Balance: 0},
		{ID: 12, PubKey: s4.key.PublicKey, Token: tokenUSDT, Balance: 1_000},
	}

	b := NewBuilder(accounts)
	historyBefore := b.HistoryRoot()
	accountsBefore := b.AccountsRoot()

	ring1 := buildMatchedRing(t, 1, 1, 2, s1, s2, 1, 2, 3, 4, 5, 6)
	ring2 := buildMatchedRing(t, 1, 3, 4, s3, s4, 7, 8, 9, 10, 11, 12)

	assignment, err := BuildBatch(b, []Ring{ring1, ring2})
	require.NoError(t, err)

	require.Equal(t, historyBefore, assignment.HistoryRootBefore)
	require.Equal(t, accountsBefore, assignment.AccountsRootBefore)
	require.NotEqual(t, assignment.HistoryRootBefore, assignment.HistoryRootAfter)
	require.NotEqual(t, assignment.AccountsRootBefore, assignment.AccountsRootAfter)
	require.NotNil(t, assignment.PublicDataHash)
}
