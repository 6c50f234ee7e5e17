package circuit

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/dex-settlement/ring-circuit/params"
)

// BatchCircuit is the top-level gadget (spec §2 module 8, §4.11): it chains
// RingsPerBatch settlements through the trading-history and accounts trees
// and binds the whole batch to a single public input, publicDataHash, via
// the SHA-256 commitment described in §6.2.
type BatchCircuit struct {
	Rings [params.RingsPerBatch]Ring

	HistoryRootBefore  Variable
	HistoryRootAfter   Variable
	AccountsRootBefore Variable
	AccountsRootAfter  Variable

	// PublicDataHashBits are the 256 bits of the true SHA-256 digest,
	// MSB-first, supplied as free witness values rather than derived from
	// PublicDataHash — the dual_variable_gadget(256) pattern (spec §6.2):
	// the bits are asserted boolean and checked against the hasher's
	// output, and PublicDataHash is constrained to equal their packed sum.
	PublicDataHashBits [params.PublicHashBits]Variable

	PublicDataHash Variable `gnark:",public"`
}

// Define implements frontend.Circuit. It settles every ring in sequence,
// chaining BOTH roots from one ring to the next — the source only chains
// the trading-history root and re-reads accountsMerkleRoot from the
// top-level witness for every ring, which would let a malicious prover
// swap in an unrelated accounts tree mid-batch; this implementation closes
// that gap (spec §9 Open Question 3) by always feeding a ring's accounts
// root forward as the next ring's accountsRootBefore. It then asserts BOTH
// chains end at their declared closing roots (§9 Open Question 4: the
// source only closes the history-root chain) before hashing the public
// data and checking it against PublicDataHash.
func (c *BatchCircuit) Define(api frontend.API) error {
	hFunc, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	curve, err := twistededwards.NewEdCurve(ecc.BN254)
	if err != nil {
		return err
	}

	historyRoot := c.HistoryRootBefore
	accountsRoot := c.AccountsRootBefore
	pubData := make([]ringPublicData, len(c.Rings))

	for i, ring := range c.Rings {
		historyRoot, accountsRoot, pubData[i], err = settleRing(api, hFunc, curve, ring, historyRoot, accountsRoot)
		if err != nil {
			return err
		}
	}

	api.AssertIsEqual(historyRoot, c.HistoryRootAfter)
	api.AssertIsEqual(accountsRoot, c.AccountsRootAfter)

	return verifyPublicData(api, c.PublicDataHash, c.PublicDataHashBits[:],
		c.HistoryRootBefore, c.HistoryRootAfter, pubData)
}
