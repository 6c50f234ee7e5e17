package witness

import (
	crand "crypto/rand"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards/eddsa"
)

// Order is the off-circuit counterpart of circuit.Order: a signed limit
// order plus the account/token identifiers the settlement gadget needs.
type Order struct {
	DexID, OrderID                  uint64
	AccountS, AccountB, AccountF    uint64
	AmountS, AmountB, AmountF       uint64
	WalletF                         uint64
	TokenS, TokenB, TokenF          uint64
	PublicKey                       eddsa.PublicKey
	Signature                       eddsa.Signature
}

// privateKey names eddsa.PrivateKey so other files in this package don't
// need to import the native eddsa package just to spell the type.
type privateKey = eddsa.PrivateKey

// NewSigningKey generates a fresh EdDSA key pair for a test fixture, the
// same gnark-crypto entry point the rollup example uses (eddsa.GenerateKey
// takes an io.Reader and returns a *PrivateKey).
func NewSigningKey() (privateKey, error) {
	pkey, err := eddsa.GenerateKey(crand.Reader)
	if err != nil {
		return privateKey{}, err
	}
	return *pkey, nil
}

// signMessage hashes the order's numeric fields with H (spec §4.1) into
// the EdDSA message digest, the same field-element hashing
// circuit/order.go's verifyOrderSignature checks in-circuit.
func signMessage(h *nativeHasher, o *Order) fr.Element {
	var dexID, orderID, accountS, accountB, accountF, amountS, amountB, amountF fr.Element
	dexID.SetUint64(o.DexID)
	orderID.SetUint64(o.OrderID)
	accountS.SetUint64(o.AccountS)
	accountB.SetUint64(o.AccountB)
	accountF.SetUint64(o.AccountF)
	amountS.SetUint64(o.AmountS)
	amountB.SetUint64(o.AmountB)
	amountF.SetUint64(o.AmountF)
	return h.hashFields(dexID, orderID, accountS, accountB, accountF, amountS, amountB, amountF)
}

// SignOrder signs o with priv, managing its own hasher. It's the entry
// point production code and out-of-package tests use; Sign itself stays
// exported too so callers assembling many orders can reuse one hasher.
func SignOrder(o *Order, priv eddsa.PrivateKey) error {
	return o.Sign(priv, newNativeHasher(), newHashFunc())
}

// Sign computes and stores o.Signature over o's fields, using priv and the
// native MiMC hash function (mirrors the rollup example's Transfer.Sign).
func (o *Order) Sign(priv eddsa.PrivateKey, h *nativeHasher, hFunc hashFunc) error {
	msg := signMessage(h, o)
	msgBytes := msg.Bytes()
	sigBin, err := priv.Sign(msgBytes[:], hFunc)
	if err != nil {
		return err
	}
	var sig eddsa.Signature
	if _, err := sig.SetBytes(sigBin); err != nil {
		return err
	}
	o.Signature = sig
	o.PublicKey = priv.PublicKey
	return nil
}
