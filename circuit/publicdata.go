package circuit

import (
	"github.com/consensys/gnark/std/hash/sha2"
	"github.com/consensys/gnark/std/math/uints"

	"github.com/dex-settlement/ring-circuit/params"
)

// reverseBits flips a bit slice end-to-end: api.ToBinary returns LSB-first
// (index 0 = least significant bit), while the public-data stream (spec
// §6.2) packs each field MSB-first. This is the "flattenReverse" step from
// the reference flattening helper, expressed directly over gnark bit
// slices instead of a byte buffer.
func reverseBits(bits []Variable) []Variable {
	out := make([]Variable, len(bits))
	for i, b := range bits {
		out[len(bits)-1-i] = b
	}
	return out
}

// bitsToBytes packs an MSB-first bit slice (len must be a multiple of 8)
// into uints.U8 values, matching how the byte-oriented sha2 gadget expects
// its input.
func bitsToBytes(api API, uapi *uints.BinaryField[uints.U32], bitsMSB []Variable) []uints.U8 {
	n := len(bitsMSB) / 8
	out := make([]uints.U8, n)
	for i := 0; i < n; i++ {
		chunk := bitsMSB[i*8 : i*8+8]
		// api.FromBinary expects LSB-first args; chunk is MSB-first, so
		// reverse it back before packing into a byte value.
		val := api.FromBinary(reverseBits(chunk)...)
		out[i] = uapi.ByteValueOf(val)
	}
	return out
}

// reverseFragments flips and concatenates each per-ring bit fragment (spec
// §6.2): decomposeOrder/rangeCheck both return LSB-first slices, so every
// fragment needs the same flip as the roots before it joins the stream.
func reverseFragments(frags ...[]Variable) []Variable {
	var out []Variable
	for _, f := range frags {
		out = append(out, reverseBits(f)...)
	}
	return out
}

// verifyPublicData hashes the assembled public-data stream with the SHA-256
// gadget and binds it to the batch's public input the way a
// dual_variable_gadget(256) does (spec §4.11, §6.2): digestBits are 256
// free witness bits — not a ToBinary decomposition of publicDataHash — each
// asserted boolean and equal to the corresponding true digest bit, with
// publicDataHash constrained to their packed little-endian sum. Because
// digestBits carries the full, unreduced 256-bit digest directly, this
// holds for every digest; deriving the comparison bits canonically from
// publicDataHash itself would only recover bits of the digest already
// reduced mod the scalar field's order, which is unsatisfiable for the
// roughly 81% of digests that don't happen to already be below it.
func verifyPublicData(api API, publicDataHash Variable, digestBits []Variable, historyRootBefore, historyRootAfter Variable, rings []ringPublicData) error {
	uapi, err := uints.New[uints.U32](api)
	if err != nil {
		return err
	}

	stream := publicDataStream(api, historyRootBefore, historyRootAfter, rings)
	bytes := bitsToBytes(api, uapi, stream)

	hasher, err := sha2.New(api)
	if err != nil {
		return err
	}
	hasher.Write(bytes)
	digest := hasher.Sum()

	var digestBitsMSB []Variable
	for _, b := range digest {
		byteBitsLSB := api.ToBinary(b.Val, 8)
		digestBitsMSB = append(digestBitsMSB, reverseBits(byteBitsLSB)...)
	}

	for i := 0; i < params.PublicHashBits; i++ {
		api.AssertIsBoolean(digestBits[i])
		api.AssertIsEqual(digestBits[i], digestBitsMSB[i])
	}

	packed := api.FromBinary(reverseBits(digestBits)...)
	api.AssertIsEqual(packed, publicDataHash)
	return nil
}

// publicDataStream assembles the full public-data bit-string (spec §6.2):
// the two trading-history roots, each decomposed to 256 MSB-first bits,
// followed by each ring's public-data fragment in order. The accounts
// roots are witnessed and chained (circuit/batch.go) but deliberately not
// part of this stream — the reference source only ever pushes the
// trading-history roots into publicDataBits.
func publicDataStream(api API, historyRootBefore, historyRootAfter Variable, rings []ringPublicData) []Variable {
	var stream []Variable
	stream = append(stream, reverseBits(api.ToBinary(historyRootBefore, params.PublicHashBits))...)
	stream = append(stream, reverseBits(api.ToBinary(historyRootAfter, params.PublicHashBits))...)

	for _, p := range rings {
		stream = append(stream, reverseFragments(
			p.orderADexID, p.orderAOrderID, p.orderAAccountS, p.orderBAccountB, p.fillSA,
			p.orderAAccountF, p.fillFA, p.orderBDexID, p.orderBOrderID, p.orderBAccountS,
			p.orderAAccountB, p.fillSB, p.orderBAccountF, p.fillFB,
		)...)
	}
	return stream
}
