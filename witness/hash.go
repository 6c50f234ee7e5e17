package witness

import (
	"hash"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// hashFunc names the stdlib hash.Hash interface gnark-crypto's EdDSA
// Sign/Verify take directly, to avoid importing "hash" at every call site.
type hashFunc = hash.Hash

// nativeHasher wraps gnark-crypto's MiMC hash.Hash with fr.Element-typed
// helpers, mirroring the Reset/Write/Sum discipline the circuit package
// uses in-circuit (circuit/merkle.go's hashNode/hashLeaf).
type nativeHasher struct {
	h hash.Hash
}

func newNativeHasher() *nativeHasher {
	return &nativeHasher{h: mimc.NewMiMC()}
}

// newHashFunc returns a fresh MiMC hash.Hash, the type eddsa.PrivateKey.Sign
// and eddsa.PublicKey.Verify take directly.
func newHashFunc() hashFunc {
	return mimc.NewMiMC()
}

func (n *nativeHasher) write(e fr.Element) {
	b := e.Bytes()
	_, _ = n.h.Write(b[:])
}

func (n *nativeHasher) sum() fr.Element {
	sum := n.h.Sum(nil)
	var out fr.Element
	out.SetBigInt(new(big.Int).SetBytes(sum))
	return out
}

// hash2 computes H(a, b), the MerkleNode primitive (spec §4.1).
func (n *nativeHasher) hash2(a, b fr.Element) fr.Element {
	n.h.Reset()
	n.write(a)
	n.write(b)
	return n.sum()
}

// hashLeaf computes H(1, fields...), the leaf domain-separation convention
// shared by FilledLeaf and AccountLeaf (spec §4.1, §4.8).
func (n *nativeHasher) hashLeaf(fields ...fr.Element) fr.Element {
	n.h.Reset()
	var one fr.Element
	one.SetUint64(1)
	n.write(one)
	for _, f := range fields {
		n.write(f)
	}
	return n.sum()
}

// hashFields computes H(fields...) with no domain separation, used for the
// EdDSA signed-message digest (spec §6.3, circuit/order.go's
// verifyOrderSignature).
func (n *nativeHasher) hashFields(fields ...fr.Element) fr.Element {
	n.h.Reset()
	for _, f := range fields {
		n.write(f)
	}
	return n.sum()
}
