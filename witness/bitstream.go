package witness

import (
	"crypto/sha256"
	"math/big"

	"github.com/dex-settlement/ring-circuit/params"
)

// bitWriter packs bits MSB-first into bytes, mirroring the layout
// circuit/publicdata.go's verifyPublicData checks in-circuit.
type bitWriter struct {
	bits []bool
}

func (w *bitWriter) writeUint(v uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		w.bits = append(w.bits, (v>>uint(i))&1 == 1)
	}
}

func (w *bitWriter) writeBigInt(v *big.Int, width int) {
	for i := width - 1; i >= 0; i-- {
		w.bits = append(w.bits, v.Bit(i) == 1)
	}
}

func (w *bitWriter) bytes() []byte {
	n := (len(w.bits) + 7) / 8
	out := make([]byte, n)
	for i, b := range w.bits {
		if b {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// publicDataDigest hashes the public-data stream (spec §6.2) and returns its
// 256 bits MSB-first (index 0 = the digest's most significant bit — the
// same layout circuit/publicdata.go's digestBitsMSB builds), alongside the
// raw digest as a big.Int. These bits are assigned directly into
// BatchCircuit.PublicDataHashBits as free witness values, mirroring the
// reference source's dual_variable_gadget(256): 256 free bit-witnesses set
// from the true digest, not a ToBinary decomposition of an already-reduced
// field element. Only the two trading-history roots are hashed — the
// accounts roots are witnessed and chained but never part of this stream,
// matching the reference source.
func publicDataDigest(historyRootBefore, historyRootAfter *big.Int, rings []ringFragment) (bits [params.PublicHashBits]bool, raw *big.Int) {
	w := &bitWriter{}
	w.writeBigInt(historyRootBefore, params.PublicHashBits)
	w.writeBigInt(historyRootAfter, params.PublicHashBits)

	for _, r := range rings {
		w.writeUint(r.OrderADexID, params.DexIDBits)
		w.writeUint(r.OrderAOrderID, params.OrderIDBits)
		w.writeUint(r.OrderAAccountS, params.AccountBits)
		w.writeUint(r.OrderBAccountB, params.AccountBits)
		w.writeUint(r.FillSA, params.AmountBits)
		w.writeUint(r.OrderAAccountF, params.AccountBits)
		w.writeUint(r.FillFA, params.AmountBits)
		w.writeUint(r.OrderBDexID, params.DexIDBits)
		w.writeUint(r.OrderBOrderID, params.OrderIDBits)
		w.writeUint(r.OrderBAccountS, params.AccountBits)
		w.writeUint(r.OrderAAccountB, params.AccountBits)
		w.writeUint(r.FillSB, params.AmountBits)
		w.writeUint(r.OrderBAccountF, params.AccountBits)
		w.writeUint(r.FillFB, params.AmountBits)
	}

	digest := sha256.Sum256(w.bytes())
	raw = new(big.Int).SetBytes(digest[:])

	for i := 0; i < params.PublicHashBits; i++ {
		bits[i] = raw.Bit(params.PublicHashBits-1-i) == 1
	}
	return bits, raw
}

// ringFragment is the native mirror of circuit.ringPublicData: the plain
// Go values a settled ring contributes to the public-data stream.
type ringFragment struct {
	OrderADexID, OrderAOrderID                           uint64
	OrderAAccountS, OrderBAccountB, FillSA                uint64
	OrderAAccountF, FillFA                                uint64
	OrderBDexID, OrderBOrderID                            uint64
	OrderBAccountS, OrderAAccountB, FillSB                uint64
	OrderBAccountF, FillFB                                uint64
}
