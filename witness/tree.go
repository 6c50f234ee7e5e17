package witness

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// sparseTree is a fixed-depth Merkle tree over 2^depth leaves, most of
// which are empty. Only known leaves and the siblings their paths touch are
// stored; every other node is looked up from a precomputed per-level
// "empty subtree" hash, the standard technique for a sparse accumulator
// this size (the accounts tree is 2^24 leaves and cannot be held in full,
// unlike the small fixed-size account list the teacher's own Merkle helper
// assumes).
type sparseTree struct {
	depth int
	nodes map[string]fr.Element // "level:index" -> node hash
	empty []fr.Element          // empty[0] = empty leaf hash, empty[depth] = empty-tree root
	h     *nativeHasher
}

func newSparseTree(depth int, emptyLeaf fr.Element, h *nativeHasher) *sparseTree {
	t := &sparseTree{depth: depth, nodes: make(map[string]fr.Element), h: h}
	t.empty = make([]fr.Element, depth+1)
	t.empty[0] = emptyLeaf
	for i := 1; i <= depth; i++ {
		t.empty[i] = h.hash2(t.empty[i-1], t.empty[i-1])
	}
	return t
}

func key(level int, index uint64) string {
	return fmt.Sprintf("%d:%d", level, index)
}

func (t *sparseTree) node(level int, index uint64) fr.Element {
	if v, ok := t.nodes[key(level, index)]; ok {
		return v
	}
	return t.empty[level]
}

func (t *sparseTree) root() fr.Element {
	return t.node(t.depth, 0)
}

// path returns the sibling hashes from the leaf up to (not including) the
// root, and the index's bits, LSB (leaf's own side) first — matching the
// bit order circuit/merkle.go's merklePath consumes.
func (t *sparseTree) path(index uint64) (siblings []fr.Element, bits []bool) {
	siblings = make([]fr.Element, t.depth)
	bits = make([]bool, t.depth)
	idx := index
	for level := 0; level < t.depth; level++ {
		bit := idx&1 == 1
		siblingIdx := idx ^ 1
		siblings[level] = t.node(level, siblingIdx)
		bits[level] = bit
		idx >>= 1
	}
	return siblings, bits
}

// setLeaf overwrites the leaf at index and recomputes every ancestor node
// up to the root.
func (t *sparseTree) setLeaf(index uint64, leaf fr.Element) {
	idx := index
	t.nodes[key(0, index)] = leaf
	node := leaf
	for level := 0; level < t.depth; level++ {
		siblingIdx := idx ^ 1
		sibling := t.node(level, siblingIdx)
		var left, right fr.Element
		if idx&1 == 0 {
			left, right = node, sibling
		} else {
			left, right = sibling, node
		}
		node = t.h.hash2(left, right)
		idx >>= 1
		t.nodes[key(level+1, idx)] = node
	}
}
