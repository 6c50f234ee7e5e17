package circuit_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards/eddsa"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"github.com/dex-settlement/ring-circuit/circuit"
	"github.com/dex-settlement/ring-circuit/witness"
)

// bn254Only restricts CheckCircuit-based assertions to the curve this
// package's MiMC/EdDSA wiring is fixed to; the rings and accounts trees
// carry bn254 fr.Element values, not generic field elements.
var bn254Only = test.WithCurves(ecc.BN254)

const (
	tokenBTC  = 1
	tokenUSDT = 2
)

// matchedRing builds a ring where orderA and orderB exactly clear each
// other's full amountS, the seed suite's scenario 1 (single-ring happy
// path, spec §8).
func matchedRing(t *testing.T, dexID, orderIDA, orderIDB uint64,
	privA, privB eddsa.PrivateKey, accSellA, accBuyA, accFeeA, accSellB, accBuyB, accFeeB uint64) witness.Ring {
	t.Helper()

	orderA := &witness.Order{
		DexID: dexID, OrderID: orderIDA,
		AccountS: accSellA, AccountB: accBuyA, AccountF: accFeeA,
		AmountS: 1_000_000, AmountB: 50_000_000, AmountF: 100,
		TokenS: tokenBTC, TokenB: tokenUSDT, TokenF: tokenUSDT,
	}
	require.NoError(t, witness.SignOrder(orderA, privA))

	orderB := &witness.Order{
		DexID: dexID, OrderID: orderIDB,
		AccountS: accSellB, AccountB: accBuyB, AccountF: accFeeB,
		AmountS: 50_000_000, AmountB: 1_000_000, AmountF: 100,
		TokenS: tokenUSDT, TokenB: tokenBTC, TokenF: tokenUSDT,
	}
	require.NoError(t, witness.SignOrder(orderB, privB))

	return witness.Ring{
		OrderA: orderA, OrderB: orderB,
		FillSA: 1_000_000, FillBA: 50_000_000, FillFA: 100,
		FillSB: 50_000_000, FillBB: 1_000_000, FillFB: 100,
	}
}

func twoRingFixtures(t *testing.T) (accounts []*witness.Account, ring1, ring2 witness.Ring) {
	t.Helper()
	s1, err1 := witness.NewSigningKey()
	s2, err2 := witness.NewSigningKey()
	s3, err3 := witness.NewSigningKey()
	s4, err4 := witness.NewSigningKey()
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.NoError(t, err3)
	require.NoError(t, err4)

	accounts = []*witness.Account{
		{ID: 1, PubKey: s1.PublicKey, Token: tokenBTC, Balance: 1_000_000},
		{ID: 2, PubKey: s1.PublicKey, Token: tokenUSDT, Balance: 0},
		{ID: 3, PubKey: s1.PublicKey, Token: tokenUSDT, Balance: 1_000},
		{ID: 4, PubKey: s2.PublicKey, Token: tokenUSDT, Balance: 50_000_000},
		{ID: 5, PubKey: s2.PublicKey, Token: tokenBTC, Balance: 0},
		{ID: 6, PubKey: s2.PublicKey, Token: tokenUSDT, Balance: 1_000},
		{ID: 7, PubKey: s3.PublicKey, Token: tokenBTC, Balance: 1_000_000},
		{ID: 8, PubKey: s3.PublicKey, Token: tokenUSDT, Balance: 0},
		{ID: 9, PubKey: s3.PublicKey, Token: tokenUSDT, Balance: 1_000},
		{ID: 10, PubKey: s4.PublicKey, Token: tokenUSDT, Balance: 50_000_000},
		{ID: 11, PubKey: s4.PublicKey, Token: tokenBTC, Balance: 0},
		{ID: 12, PubKey: s4.PublicKey, Token: tokenUSDT, Balance: 1_000},
	}

	ring1 = matchedRing(t, 1, 1, 2, s1, s2, 1, 2, 3, 4, 5, 6)
	ring2 = matchedRing(t, 1, 3, 4, s3, s4, 7, 8, 9, 10, 11, 12)
	return accounts, ring1, ring2
}

func TestBatchCircuitHappyPath(t *testing.T) {
	accounts, ring1, ring2 := twoRingFixtures(t)
	b := witness.NewBuilder(accounts)
	assignment, err := witness.BuildBatch(b, []witness.Ring{ring1, ring2})
	require.NoError(t, err)

	assert := test.NewAssert(t)
	assert.ProverSucceeded(&circuit.BatchCircuit{}, assignment, bn254Only)
}

// TestBatchCircuitTamperedSignatureFails covers scenario 4 (spec §8): a
// signature scalar incremented by one after signing must be rejected by the
// EdDSA gadget.
func TestBatchCircuitTamperedSignatureFails(t *testing.T) {
	accounts, ring1, ring2 := twoRingFixtures(t)
	b := witness.NewBuilder(accounts)
	assignment, err := witness.BuildBatch(b, []witness.Ring{ring1, ring2})
	require.NoError(t, err)

	s := assignment.Rings[0].OrderA.Signature.S.(*big.Int)
	assignment.Rings[0].OrderA.Signature.S = new(big.Int).Add(s, big.NewInt(1))

	assert := test.NewAssert(t)
	assert.ProverFailed(&circuit.BatchCircuit{}, assignment, bn254Only)
}

// TestBatchCircuitAccountsRootChainBreakFails covers scenario 10 (spec §8):
// corrupting one account's Merkle path so it no longer opens against the
// root the previous ring in the batch left behind.
func TestBatchCircuitAccountsRootChainBreakFails(t *testing.T) {
	accounts, ring1, ring2 := twoRingFixtures(t)
	b := witness.NewBuilder(accounts)
	assignment, err := witness.BuildBatch(b, []witness.Ring{ring1, ring2})
	require.NoError(t, err)

	sibling := assignment.Rings[1].BalanceASellSide.Path[0].(*big.Int)
	assignment.Rings[1].BalanceASellSide.Path[0] = new(big.Int).Add(sibling, big.NewInt(1))

	assert := test.NewAssert(t)
	assert.ProverFailed(&circuit.BatchCircuit{}, assignment, bn254Only)
}

// TestBatchCircuitTokenMismatchFails covers scenario 6 (spec §8): orderA's
// buy token must equal orderB's sell token (and vice versa).
func TestBatchCircuitTokenMismatchFails(t *testing.T) {
	accounts, ring1, ring2 := twoRingFixtures(t)
	ring1.OrderB.TokenS = ring1.OrderB.TokenS + 1

	b := witness.NewBuilder(accounts)
	assignment, err := witness.BuildBatch(b, []witness.Ring{ring1, ring2})
	require.NoError(t, err)

	assert := test.NewAssert(t)
	assert.ProverFailed(&circuit.BatchCircuit{}, assignment, bn254Only)
}

// TestBatchCircuitBalanceUnderflowFails covers scenario 9 (spec §8): a fill
// that clears its own amountS/over-fill check but still exceeds the
// seller's actual on-chain balance must be rejected by SubAdd's range
// check, independent of the over-fill invariant.
func TestBatchCircuitBalanceUnderflowFails(t *testing.T) {
	accounts, ring1, ring2 := twoRingFixtures(t)
	for _, a := range accounts {
		if a.ID == 1 {
			a.Balance = 100 // below ring1's FillSA of 1_000_000
		}
	}

	b := witness.NewBuilder(accounts)
	assignment, err := witness.BuildBatch(b, []witness.Ring{ring1, ring2})
	require.NoError(t, err)

	assert := test.NewAssert(t)
	assert.ProverFailed(&circuit.BatchCircuit{}, assignment, bn254Only)
}

// TestBatchCircuitOverFillFails covers scenario 3 (spec §8): a fill amount
// exceeding the order's remaining (amount - filled) must be rejected. The
// fill amounts aren't part of the signed message, so bumping FillSA past
// orderA.AmountS after signing still leaves a validly-signed order feeding
// an invalid fill.
func TestBatchCircuitOverFillFails(t *testing.T) {
	accounts, ring1, ring2 := twoRingFixtures(t)
	ring1.FillSA = ring1.OrderA.AmountS + 1

	b := witness.NewBuilder(accounts)
	assignment, err := witness.BuildBatch(b, []witness.Ring{ring1, ring2})
	require.NoError(t, err)

	assert := test.NewAssert(t)
	assert.ProverFailed(&circuit.BatchCircuit{}, assignment, bn254Only)
}
