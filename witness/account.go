package witness

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards/eddsa"
)

// Account is one AccountLeaf's off-circuit state: a single (owner, token)
// balance slot, addressed in the accounts tree by its own account id (spec
// §3 AccountLeaf — this domain's "accounts" are already per-token balance
// slots, the same sub-account modeling the rollup example uses per user
// but specialized one step further to per user-and-token).
type Account struct {
	ID      uint64
	PubKey  eddsa.PublicKey
	Token   uint64
	Balance uint64
}

func (a *Account) leafFields() (pkX, pkY, token, balance fr.Element) {
	pkX = a.PubKey.A.X
	pkY = a.PubKey.A.Y
	token.SetUint64(a.Token)
	balance.SetUint64(a.Balance)
	return
}
