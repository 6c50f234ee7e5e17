// Package params centralizes the compile-time configuration of the ring
// settlement circuit: tree depths, batch size and curve selection.
//
// Adapted from the teacher's src/utils/constants.go, which centralizes
// analogous tree-depth/batch-size constants for its own circuit family as
// typed Go values rather than a runtime config file.
package params

import "github.com/consensys/gnark-crypto/ecc"

const (
	// HistoryTreeDepth is the depth of the trading-history Merkle tree,
	// keyed by orderID‖accountS. The key packs OrderIDBits (4) high bits
	// of orderID over AccountBits (24) low bits of accountS, so the tree
	// must be deep enough to address the full 28-bit key space — a
	// shallower tree would make historyIndexBits's api.ToBinary constrain
	// the key to be smaller than it actually is, an unsatisfiable
	// constraint for any order with orderID >= 1 or accountS >= 2^16.
	HistoryTreeDepth = OrderIDBits + AccountBits

	// AccountsTreeDepth is the depth of the accounts Merkle tree, keyed
	// by account index. Six leaves (one per token side touched by a
	// ring) are updated per settled ring.
	AccountsTreeDepth = 24

	// RingsPerBatch is the number of RingSettlementGadget instances
	// chained inside a single Batch circuit.
	RingsPerBatch = 2

	// Bit widths, per the data model (spec §3).
	DexIDBits    = 16
	OrderIDBits  = 4
	AccountBits  = 24
	AmountBits   = 96
	WalletBits   = 24
	LeqBits      = 128
	PublicHashBits = 256
)

// Curve is the outer proving curve. The embedded ("Jubjub-like") signature
// curve is its twisted-Edwards companion, selected in the eddsa gadget via
// twistededwards.NewEdCurve(ecc.BN254).
var Curve = ecc.BN254
