package witness

import (
	"math/big"

	nativeeddsa "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards/eddsa"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	circuiteddsa "github.com/consensys/gnark/std/signature/eddsa"
)

// eddsaPublicKeyAssignment converts a native gnark-crypto public key into
// the frontend.Variable-typed struct circuit.Order.PublicKey expects.
func eddsaPublicKeyAssignment(pub nativeeddsa.PublicKey) circuiteddsa.PublicKey {
	return circuiteddsa.PublicKey{
		A: twistededwards.Point{
			X: toBigInt(pub.A.X),
			Y: toBigInt(pub.A.Y),
		},
	}
}

// eddsaSignatureAssignment converts a native gnark-crypto signature into
// the frontend.Variable-typed struct circuit.Order.Signature expects. S is
// read as a big-endian scalar, matching the big-endian convention this
// package uses everywhere else it turns an fr.Element into a Variable.
func eddsaSignatureAssignment(sig nativeeddsa.Signature) circuiteddsa.Signature {
	s := new(big.Int).SetBytes(sig.S[:])
	return circuiteddsa.Signature{
		R: twistededwards.Point{
			X: toBigInt(sig.R.X),
			Y: toBigInt(sig.R.Y),
		},
		S: s,
	}
}
