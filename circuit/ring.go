package circuit

import (
	"math/big"

	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/dex-settlement/ring-circuit/params"
)

// historyIndexBits derives the trading-history tree index for a
// (orderID, accountS) slot (spec §3 FilledLeaf: "leaf key = orderID ‖
// accountS as bit-string") by packing the two fields into one field
// element and taking its low HistoryTreeDepth bits, the same
// pack-then-ToBinary technique the teacher's AccountIdToMerkleHelper uses
// for a single account id.
func historyIndexBits(api API, orderID, accountS Variable) []Variable {
	shift := new(big.Int).Lsh(big.NewInt(1), params.AccountBits)
	key := api.Add(api.Mul(orderID, shift), accountS)
	return api.ToBinary(key, params.HistoryTreeDepth)
}

// accountIndexBits derives the accounts tree index directly from an
// account id (already range-checked to AccountBits by decomposeOrder).
func accountIndexBits(api API, account Variable) []Variable {
	return api.ToBinary(account, params.AccountsTreeDepth)
}

// ringPublicData is the bit-vector one settled ring contributes to the
// batch public-data stream (spec §6.2).
type ringPublicData struct {
	orderADexID, orderAOrderID                       []Variable
	orderAAccountS, orderBAccountB, fillSA            []Variable
	orderAAccountF, fillFA                            []Variable
	orderBDexID, orderBOrderID                        []Variable
	orderBAccountS, orderAAccountB, fillSB            []Variable
	orderBAccountF, fillFB                            []Variable
}

// settleRing implements the RingSettlementGadget (spec §4.10), applying,
// in the spec's exact order: fill range checks, the two history-tree
// updates, the six accounts-tree updates, the cross-order token equality,
// the rate checks (with the source's copy-paste bug corrected — spec §9
// Open Questions 1-2), and the two match inequalities. It returns the
// ring's new history/accounts roots and its public-data fragment.
func settleRing(api API, hFunc mimc.MiMC, curve twistededwards.EdCurve, r Ring, historyRootBefore, accountsRootBefore Variable) (historyRootAfter, accountsRootAfter Variable, pub ringPublicData, err error) {
	// Step 1: bit-decompose and range-check all six fills.
	fillSABits := rangeCheck(api, r.FillSA, params.AmountBits)
	fillBABits := rangeCheck(api, r.FillBA, params.AmountBits)
	fillFABits := rangeCheck(api, r.FillFA, params.AmountBits)
	fillSBBits := rangeCheck(api, r.FillSB, params.AmountBits)
	fillBBBits := rangeCheck(api, r.FillBB, params.AmountBits)
	fillFBBits := rangeCheck(api, r.FillFB, params.AmountBits)
	_ = fillBABits
	_ = fillBBBits

	orderABits := decomposeOrder(api, r.OrderA)
	orderBBits := decomposeOrder(api, r.OrderB)

	if err := verifyOrderSignature(api, r.OrderA, hFunc, curve); err != nil {
		return nil, nil, pub, err
	}
	if err := verifyOrderSignature(api, r.OrderB, hFunc, curve); err != nil {
		return nil, nil, pub, err
	}

	// Step 2: UpdateFilled for A then B against the incoming history
	// root, chained; each new filled must not exceed the order's amountS.
	filledAAfter := api.Add(r.FilledA.Filled, r.FillSA)
	historyRootMid := updateFilled(api, hFunc, historyRootBefore, r.FilledA.Filled, filledAAfter,
		r.FilledA.Path[:], historyIndexBits(api, r.OrderA.OrderID, r.OrderA.AccountS))
	assertLeq(api, filledAAfter, r.OrderA.AmountS)

	filledBAfter := api.Add(r.FilledB.Filled, r.FillSB)
	historyRootAfter = updateFilled(api, hFunc, historyRootMid, r.FilledB.Filled, filledBAfter,
		r.FilledB.Path[:], historyIndexBits(api, r.OrderB.OrderID, r.OrderB.AccountS))
	assertLeq(api, filledBAfter, r.OrderB.AmountS)

	// Step 3: six UpdateBalance operations against the incoming accounts
	// root, in the spec's fixed sequence, each chained from the previous.
	root := accountsRootBefore

	// A.tokenS debit and B.tokenB credit share one delta (fillS_A); A.tokenB
	// credit and B.tokenS debit share the other (fillS_B). Each pair is
	// computed with one subAdd call (spec §4.7), and its two results are
	// consumed by the two leaf updates the bullet list names as "paired".
	aSellAfter, bBuyAfter := subAdd(api, r.BalanceASellSide.Balance, r.BalanceBBuySide.Balance, r.FillSA)
	bSellAfter, aBuyAfter := subAdd(api, r.BalanceBSellSide.Balance, r.BalanceABuySide.Balance, r.FillSB)
	aFeeAfter, _ := subAdd(api, r.BalanceAFeeSide.Balance, 0, r.FillFA)
	bFeeAfter, _ := subAdd(api, r.BalanceBFeeSide.Balance, 0, r.FillFB)

	root = updateBalance(api, hFunc, root, r.OrderA.PublicKey.A.X, r.OrderA.PublicKey.A.Y, r.OrderA.TokenS,
		r.BalanceASellSide.Balance, aSellAfter, r.BalanceASellSide.Path[:], accountIndexBits(api, r.OrderA.AccountS))

	root = updateBalance(api, hFunc, root, r.OrderA.PublicKey.A.X, r.OrderA.PublicKey.A.Y, r.OrderA.TokenB,
		r.BalanceABuySide.Balance, aBuyAfter, r.BalanceABuySide.Path[:], accountIndexBits(api, r.OrderA.AccountB))

	root = updateBalance(api, hFunc, root, r.OrderA.PublicKey.A.X, r.OrderA.PublicKey.A.Y, r.OrderA.TokenF,
		r.BalanceAFeeSide.Balance, aFeeAfter, r.BalanceAFeeSide.Path[:], accountIndexBits(api, r.OrderA.AccountF))

	root = updateBalance(api, hFunc, root, r.OrderB.PublicKey.A.X, r.OrderB.PublicKey.A.Y, r.OrderB.TokenS,
		r.BalanceBSellSide.Balance, bSellAfter, r.BalanceBSellSide.Path[:], accountIndexBits(api, r.OrderB.AccountS))

	root = updateBalance(api, hFunc, root, r.OrderB.PublicKey.A.X, r.OrderB.PublicKey.A.Y, r.OrderB.TokenB,
		r.BalanceBBuySide.Balance, bBuyAfter, r.BalanceBBuySide.Path[:], accountIndexBits(api, r.OrderB.AccountB))

	root = updateBalance(api, hFunc, root, r.OrderB.PublicKey.A.X, r.OrderB.PublicKey.A.Y, r.OrderB.TokenF,
		r.BalanceBFeeSide.Balance, bFeeAfter, r.BalanceBFeeSide.Path[:], accountIndexBits(api, r.OrderB.AccountF))

	accountsRootAfter = root

	// Step 4: cross-order token equality.
	api.AssertIsEqual(r.OrderA.TokenS, r.OrderB.TokenB)
	api.AssertIsEqual(r.OrderA.TokenB, r.OrderB.TokenS)

	// Step 5: rate checks. orderB's own amounts are used for B's checks —
	// the source swaps in orderA's amounts here, a copy-paste bug this
	// implementation corrects (spec §9 Open Questions 1-2).
	rateChecker(api, r.FillSA, r.FillBA, r.OrderA.AmountS, r.OrderA.AmountB)
	rateChecker(api, r.FillSB, r.FillBB, r.OrderB.AmountS, r.OrderB.AmountB)
	rateChecker(api, r.FillFA, r.FillSA, r.OrderA.AmountF, r.OrderA.AmountS)
	rateChecker(api, r.FillFB, r.FillSB, r.OrderB.AmountF, r.OrderB.AmountS)

	// Step 6: match checks.
	assertLeq(api, r.FillBB, r.FillSA)
	assertLeq(api, r.FillBA, r.FillSB)

	// Step 7: emit this ring's public-data fragment.
	pub = ringPublicData{
		orderADexID:    orderABits.dexID,
		orderAOrderID:  orderABits.orderID,
		orderAAccountS: orderABits.accountS,
		orderBAccountB: orderBBits.accountB,
		fillSA:         fillSABits,
		orderAAccountF: orderABits.accountF,
		fillFA:         fillFABits,
		orderBDexID:    orderBBits.dexID,
		orderBOrderID:  orderBBits.orderID,
		orderBAccountS: orderBBits.accountS,
		orderAAccountB: orderABits.accountB,
		fillSB:         fillSBBits,
		orderBAccountF: orderBBits.accountF,
		fillFB:         fillFBBits,
	}
	return historyRootAfter, accountsRootAfter, pub, nil
}
