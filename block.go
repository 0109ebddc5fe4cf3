package ccsh

import (
	"encoding/binary"
	"math/bits"
)

// Copyright © 2023 Dylan McBean. Licensed under the Apache-2.0 license.
// This file contains the ChaCha-style block permutation backing CCSH. It is a
// pure function of its 16-word input and is shared by nothing else; the exact
// constants, rotation amounts, and operation order below fix every digest this
// module produces, so none of them are negotiable.

const (
	rounds     = 10 /* Double-rounds per permutation: 80 quarter-rounds total. */
	chunkSize  = 32 /* Input bytes absorbed per permutation call. */
	stateWords = 16

	/* "expand 32-byte k", read four ASCII bytes at a time as big-endian words.
	N.B.: these differ from RFC 7539's little-endian sigma constants. */
	sigma0 = 0x65787061 /* expa */
	sigma1 = 0x6e642033 /* nd 3 */
	sigma2 = 0x32206279 /* 2 by */
	sigma3 = 0x7465206b /* te k */
)

// quarterRound mixes four state words with wraparound 32-bit add-rotate-xor
// steps and rotation constants 16, 12, 8, 7.
func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 16)
	c += d
	b ^= c
	b = bits.RotateLeft32(b, 12)
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 8)
	c += d
	b ^= c
	b = bits.RotateLeft32(b, 7)
	return a, b, c, d
}

// permute runs the 16-word block through 10 double-rounds and feeds the input
// forward into the result with wraparound addition. The feed-forward is load-
// bearing: without it the permutation is trivially invertible and every digest
// changes.
func permute(in *[stateWords]uint32) [stateWords]uint32 {
	x := *in
	for i := 0; i < rounds; i++ {
		x[0], x[4], x[8], x[12] = quarterRound(x[0], x[4], x[8], x[12])
		x[1], x[5], x[9], x[13] = quarterRound(x[1], x[5], x[9], x[13])
		x[2], x[6], x[10], x[14] = quarterRound(x[2], x[6], x[10], x[14])
		x[3], x[7], x[11], x[15] = quarterRound(x[3], x[7], x[11], x[15])
		x[0], x[5], x[10], x[15] = quarterRound(x[0], x[5], x[10], x[15])
		x[1], x[6], x[11], x[12] = quarterRound(x[1], x[6], x[11], x[12])
		x[2], x[7], x[8], x[13] = quarterRound(x[2], x[7], x[8], x[13])
		x[3], x[4], x[9], x[14] = quarterRound(x[3], x[4], x[9], x[14])
	}
	for i := range x {
		x[i] += in[i]
	}
	return x
}

// blockFor assembles the permutation input for one chunk of at most 32 bytes
// and returns the permuted block. Words 0–3 hold the fixed constants, words
// 4–11 the zero-padded chunk bytes packed little-endian (the packing order is
// fixed here so digests match across platforms), word 12 the low half of the
// byte counter, and word 14 the low half of the chunk nonce; words 13 and 15
// stay zero.
func blockFor(chunk []byte, counter, nonce uint64) [stateWords]uint32 {
	in := [stateWords]uint32{sigma0, sigma1, sigma2, sigma3}
	var data [chunkSize]byte
	copy(data[:], chunk)
	for i := 0; i < chunkSize/4; i++ {
		in[4+i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	in[12] = uint32(counter)
	in[14] = uint32(nonce)
	return permute(&in)
}
