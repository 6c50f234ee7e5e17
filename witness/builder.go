package witness

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/rs/zerolog/log"

	"github.com/dex-settlement/ring-circuit/circuit"
	"github.com/dex-settlement/ring-circuit/params"
)

// Ring is the off-circuit input to one ring settlement: two signed orders
// and the six fill amounts the operator computed for them.
type Ring struct {
	OrderA, OrderB                          *Order
	FillSA, FillBA, FillFA, FillSB, FillBB, FillFB uint64
}

// Builder maintains the trading-history and accounts sparse Merkle trees
// and assembles BatchCircuit assignments ring by ring, mirroring the
// rollup example's Operator (operator.go's updateState): each call reads
// the "before" leaves and paths a ring touches, applies the update, and
// records the "after" state for the next call.
type Builder struct {
	history  *sparseTree
	accounts *sparseTree
	accIdx   map[uint64]*Account // account id -> current record
	filled   map[uint64]uint64   // history leaf key -> cumulative filled
	h        *nativeHasher
}

// filledKey packs (orderID, accountS) the same way circuit/ring.go's
// historyIndexBits does, so native and in-circuit indices agree.
func filledKey(orderID, accountS uint64) uint64 {
	return orderID<<uint(params.AccountBits) | accountS
}

// NewBuilder creates a builder with an empty history tree and an accounts
// tree holding the given accounts.
func NewBuilder(accounts []*Account) *Builder {
	h := newNativeHasher()

	var emptyFilled fr.Element
	history := newSparseTree(params.HistoryTreeDepth, h.hashLeaf(emptyFilled, emptyFilled), h)

	var emptyPkX, emptyPkY, emptyToken, emptyBalance fr.Element
	accountsTree := newSparseTree(params.AccountsTreeDepth,
		h.hashLeaf(emptyPkX, emptyPkY, emptyToken, emptyBalance), h)

	b := &Builder{
		history:  history,
		accounts: accountsTree,
		accIdx:   make(map[uint64]*Account),
		filled:   make(map[uint64]uint64),
		h:        h,
	}
	for _, a := range accounts {
		b.accIdx[a.ID] = a
		pkX, pkY, token, balance := a.leafFields()
		accountsTree.setLeaf(a.ID, h.hashLeaf(pkX, pkY, token, balance))
	}
	return b
}

// HistoryRoot and AccountsRoot return the current tree roots as *big.Int,
// the same representation the generated assignment uses for Variable
// fields.
func (b *Builder) HistoryRoot() *big.Int  { return toBigInt(b.history.root()) }
func (b *Builder) AccountsRoot() *big.Int { return toBigInt(b.accounts.root()) }

func toBigInt(e fr.Element) *big.Int {
	var out big.Int
	e.BigInt(&out)
	return &out
}

func fieldPath(elems []fr.Element) []circuit.Variable {
	out := make([]circuit.Variable, len(elems))
	for i, e := range elems {
		out[i] = toBigInt(e)
	}
	return out
}

// accountBefore snapshots an account's current balance and Merkle path.
func (b *Builder) accountBefore(id uint64) (circuit.AccountBalance, *Account) {
	acc := b.accIdx[id]
	siblings, _ := b.accounts.path(id)
	var path [params.AccountsTreeDepth]circuit.Variable
	copy(path[:], fieldPath(siblings))
	return circuit.AccountBalance{Balance: acc.Balance, Path: path}, acc
}

// applyAccountUpdate writes acc's new balance into the accounts tree.
func (b *Builder) applyAccountUpdate(acc *Account, newBalance uint64) {
	acc.Balance = newBalance
	pkX, pkY, token, balance := acc.leafFields()
	b.accounts.setLeaf(acc.ID, b.h.hashLeaf(pkX, pkY, token, balance))
}

// filledBefore snapshots an order's cumulative-filled state and path.
func (b *Builder) filledBefore(orderID, accountS uint64) circuit.FilledState {
	key := filledKey(orderID, accountS)
	filled := b.filled[key]
	siblings, _ := b.history.path(key)
	var path [params.HistoryTreeDepth]circuit.Variable
	copy(path[:], fieldPath(siblings))
	return circuit.FilledState{Filled: filled, Path: path}
}

func (b *Builder) applyFilledUpdate(orderID, accountS, newFilled uint64) {
	key := filledKey(orderID, accountS)
	b.filled[key] = newFilled
	var f fr.Element
	f.SetUint64(newFilled)
	b.history.setLeaf(key, b.h.hashLeaf(f, f))
}

func orderAssignment(o *Order) circuit.Order {
	return circuit.Order{
		DexID: o.DexID, OrderID: o.OrderID,
		AccountS: o.AccountS, AccountB: o.AccountB, AccountF: o.AccountF,
		AmountS: o.AmountS, AmountB: o.AmountB, AmountF: o.AmountF,
		WalletF: o.WalletF,
		TokenS:  o.TokenS, TokenB: o.TokenB, TokenF: o.TokenF,
		PublicKey: eddsaPublicKeyAssignment(o.PublicKey),
		Signature: eddsaSignatureAssignment(o.Signature),
	}
}

// BuildRing applies the two history-tree and six accounts-tree updates in
// the exact order circuit/ring.go's settleRing does, reading each "before"
// leaf and path right before its own update so every path opens against the
// root the previous update left behind, and returns the filled circuit.Ring
// assignment plus this ring's public-data fragment.
func (b *Builder) BuildRing(r Ring) (circuit.Ring, ringFragment, error) {
	filledA := b.filledBefore(r.OrderA.OrderID, r.OrderA.AccountS)
	b.applyFilledUpdate(r.OrderA.OrderID, r.OrderA.AccountS, b.filled[filledKey(r.OrderA.OrderID, r.OrderA.AccountS)]+r.FillSA)
	filledB := b.filledBefore(r.OrderB.OrderID, r.OrderB.AccountS)
	b.applyFilledUpdate(r.OrderB.OrderID, r.OrderB.AccountS, b.filled[filledKey(r.OrderB.OrderID, r.OrderB.AccountS)]+r.FillSB)

	balASell, accASell := b.accountBefore(r.OrderA.AccountS)
	b.applyAccountUpdate(accASell, accASell.Balance-r.FillSA)
	balABuy, accABuy := b.accountBefore(r.OrderA.AccountB)
	b.applyAccountUpdate(accABuy, accABuy.Balance+r.FillSB)
	balAFee, accAFee := b.accountBefore(r.OrderA.AccountF)
	b.applyAccountUpdate(accAFee, accAFee.Balance-r.FillFA)
	balBSell, accBSell := b.accountBefore(r.OrderB.AccountS)
	b.applyAccountUpdate(accBSell, accBSell.Balance-r.FillSB)
	balBBuy, accBBuy := b.accountBefore(r.OrderB.AccountB)
	b.applyAccountUpdate(accBBuy, accBBuy.Balance+r.FillSA)
	balBFee, accBFee := b.accountBefore(r.OrderB.AccountF)
	b.applyAccountUpdate(accBFee, accBFee.Balance-r.FillFB)

	ring := circuit.Ring{
		OrderA: orderAssignment(r.OrderA),
		OrderB: orderAssignment(r.OrderB),
		FillSA: r.FillSA, FillBA: r.FillBA, FillFA: r.FillFA,
		FillSB: r.FillSB, FillBB: r.FillBB, FillFB: r.FillFB,
		FilledA: filledA, FilledB: filledB,
		BalanceASellSide: balASell, BalanceABuySide: balABuy, BalanceAFeeSide: balAFee,
		BalanceBSellSide: balBSell, BalanceBBuySide: balBBuy, BalanceBFeeSide: balBFee,
	}

	frag := ringFragment{
		OrderADexID: r.OrderA.DexID, OrderAOrderID: r.OrderA.OrderID,
		OrderAAccountS: r.OrderA.AccountS, OrderBAccountB: r.OrderB.AccountB, FillSA: r.FillSA,
		OrderAAccountF: r.OrderA.AccountF, FillFA: r.FillFA,
		OrderBDexID: r.OrderB.DexID, OrderBOrderID: r.OrderB.OrderID,
		OrderBAccountS: r.OrderB.AccountS, OrderAAccountB: r.OrderA.AccountB, FillSB: r.FillSB,
		OrderBAccountF: r.OrderB.AccountF, FillFB: r.FillFB,
	}

	return ring, frag, nil
}

// BuildBatch runs rings through b, starting from b's current trees, and
// returns the complete circuit.BatchCircuit assignment, including the
// SHA-256 public-data commitment (spec §4.12).
func BuildBatch(b *Builder, rings []Ring) (*circuit.BatchCircuit, error) {
	log.Info().
		Int("rings", len(rings)).
		Int("historyTreeDepth", params.HistoryTreeDepth).
		Int("accountsTreeDepth", params.AccountsTreeDepth).
		Str("curve", params.Curve.String()).
		Msg("assembling batch witness")

	var assignment circuit.BatchCircuit
	assignment.HistoryRootBefore = b.HistoryRoot()
	assignment.AccountsRootBefore = b.AccountsRoot()

	frags := make([]ringFragment, len(rings))
	for i, r := range rings {
		ringAssignment, frag, err := b.BuildRing(r)
		if err != nil {
			log.Error().Err(err).Int("ring", i).Msg("failed to build ring witness")
			return nil, err
		}
		log.Debug().Int("ring", i).Msg("ring witness built")
		assignment.Rings[i] = ringAssignment
		frags[i] = frag
	}

	assignment.HistoryRootAfter = b.HistoryRoot()
	assignment.AccountsRootAfter = b.AccountsRoot()

	digestBits, rawDigest := publicDataDigest(
		assignment.HistoryRootBefore.(*big.Int), assignment.HistoryRootAfter.(*big.Int),
		frags,
	)
	for i, bit := range digestBits {
		if bit {
			assignment.PublicDataHashBits[i] = 1
		} else {
			assignment.PublicDataHashBits[i] = 0
		}
	}

	var reduced fr.Element
	reduced.SetBigInt(rawDigest)
	assignment.PublicDataHash = toBigInt(reduced)

	return &assignment, nil
}
