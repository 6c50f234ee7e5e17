package circuit

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/signature/eddsa"

	"github.com/dex-settlement/ring-circuit/params"
)

// Variable and API mirror the teacher's own aliasing convention: every
// gadget in this package is written against these two names rather than
// against frontend.Variable/frontend.API directly.
type (
	Variable = frontend.Variable
	API      = frontend.API
)

// Order is one side of a ring: a signed limit order plus the account/token
// identifiers the settlement gadget needs to move balances.
type Order struct {
	DexID     Variable
	OrderID   Variable
	AccountS  Variable
	AccountB  Variable
	AccountF  Variable
	AmountS   Variable
	AmountB   Variable
	AmountF   Variable
	WalletF   Variable
	TokenS    Variable
	TokenB    Variable
	TokenF    Variable
	PublicKey eddsa.PublicKey
	Signature eddsa.Signature
}

// AccountBalance is the witness side of one AccountLeaf: the fields hashed
// together to form a leaf of the accounts tree, plus the Merkle path
// required to prove (and update) its inclusion.
type AccountBalance struct {
	Balance Variable
	Path    [params.AccountsTreeDepth]Variable
}

// FilledState is the witness side of one FilledLeaf: the order's
// cumulative-filled amount prior to this batch, plus its Merkle path in
// the trading-history tree.
type FilledState struct {
	Filled Variable
	Path   [params.HistoryTreeDepth]Variable
}

// Ring bundles two orders, the six fills that settle them, and the
// "before" leaf/path witness data the RingSettlementGadget needs to walk
// both trees from the incoming roots to the outgoing ones.
type Ring struct {
	OrderA Order
	OrderB Order

	FillSA Variable
	FillBA Variable
	FillFA Variable
	FillSB Variable
	FillBB Variable
	FillFB Variable

	FilledA FilledState
	FilledB FilledState

	// BalanceASellSide is A's balance of orderA.TokenS before the debit.
	BalanceASellSide AccountBalance
	// BalanceABuySide is A's balance of orderA.TokenB before the credit.
	BalanceABuySide AccountBalance
	// BalanceAFeeSide is A's balance of orderA.TokenF before the fee debit.
	BalanceAFeeSide AccountBalance
	// BalanceBSellSide is B's balance of orderB.TokenS before the debit.
	BalanceBSellSide AccountBalance
	// BalanceBBuySide is B's balance of orderB.TokenB before the credit.
	BalanceBBuySide AccountBalance
	// BalanceBFeeSide is B's balance of orderB.TokenF before the fee debit.
	BalanceBFeeSide AccountBalance
}
