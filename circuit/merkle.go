package circuit

import (
	"github.com/consensys/gnark/std/hash/mimc"
)

// hashNode absorbs two children into one parent node using H (§4.1),
// resetting hFunc first so each call starts from a clean sponge state —
// the same discipline the reference rollup circuit uses around its own
// mimc.MiMC calls (hFunc.Reset() immediately before each logical hash).
func hashNode(hFunc mimc.MiMC, a, b Variable) Variable {
	hFunc.Reset()
	hFunc.Write(a, b)
	return hFunc.Sum()
}

// hashLeaf absorbs a fixed-arity leaf vector with the domain-separation
// constant 1 prepended (spec §4.1/§4.8).
func hashLeaf(hFunc mimc.MiMC, fields ...Variable) Variable {
	hFunc.Reset()
	args := append([]Variable{1}, fields...)
	hFunc.Write(args...)
	return hFunc.Sum()
}

// merklePath recomputes the root obtained by walking leaf up through path,
// selecting left/right children at each level from the corresponding bit
// of index (1 = leaf is the right child, mirroring the teacher's
// VerifyMerkleProof/UpdateMerkleProof helper convention).
func merklePath(api API, hFunc mimc.MiMC, leaf Variable, path []Variable, index []Variable) Variable {
	node := leaf
	for i := 0; i < len(path); i++ {
		api.AssertIsBoolean(index[i])
		d1 := api.Select(index[i], path[i], node)
		d2 := api.Select(index[i], node, path[i])
		node = hashNode(hFunc, d1, d2)
	}
	return node
}

// merkleUpdate is the core of the MerkleUpdate gadget (spec §4.8): it
// verifies leafBefore is included under rootBefore along path/index, then
// recomputes the root for leafAfter reusing the identical path and index —
// the shared-path technique that makes the update sound, since the prover
// cannot swap siblings between the "before" and "after" recomputation.
func merkleUpdate(api API, hFunc mimc.MiMC, rootBefore, leafBefore, leafAfter Variable, path, index []Variable) (rootAfter Variable) {
	computedBefore := merklePath(api, hFunc, leafBefore, path, index)
	api.AssertIsEqual(rootBefore, computedBefore)
	return merklePath(api, hFunc, leafAfter, path, index)
}

// updateFilled applies the UpdateFilled specialization: leaf = H(1, filled,
// filled), and filledAfter = filledBefore + fill is asserted as part of the
// caller's over-fill check (spec §4.8, §4.10 step 2).
func updateFilled(api API, hFunc mimc.MiMC, rootBefore Variable, filledBefore, filledAfter Variable, path, index []Variable) Variable {
	leafBefore := hashLeaf(hFunc, filledBefore, filledBefore)
	leafAfter := hashLeaf(hFunc, filledAfter, filledAfter)
	return merkleUpdate(api, hFunc, rootBefore, leafBefore, leafAfter, path, index)
}

// updateBalance applies the UpdateBalance specialization: leaf = H(1, pk.x,
// pk.y, token, balance); (pk, token) is identical before and after, binding
// the balance update to that specific key/token pair (spec §4.8).
func updateBalance(api API, hFunc mimc.MiMC, rootBefore Variable, pkX, pkY, token, balanceBefore, balanceAfter Variable, path, index []Variable) Variable {
	leafBefore := hashLeaf(hFunc, pkX, pkY, token, balanceBefore)
	leafAfter := hashLeaf(hFunc, pkX, pkY, token, balanceAfter)
	return merkleUpdate(api, hFunc, rootBefore, leafBefore, leafAfter, path, index)
}
