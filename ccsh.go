// Package ccsh implements CCSH, the Counter ChaCha Stream Hash: a streaming,
// non-cryptographic 512-bit hash built from a ChaCha-style permutation. Input
// is absorbed in 32-byte chunks; each chunk is mixed with a cumulative byte
// counter and a per-chunk nonce, permuted, and folded into a 16-word
// accumulator (first chunk overwrites, later chunks XOR). No collision or
// preimage resistance is claimed.
package ccsh

import (
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Copyright © 2023 Dylan McBean. Licensed under the Apache-2.0 license.

// DigestSize is the size of a CCSH digest in bytes.
const DigestSize = 64

// Digest holds one hash computation in progress. The zero value is ready to
// use. Instances share no state; a single instance must not be written from
// multiple goroutines without external synchronization.
type Digest struct {
	state       [stateWords]uint32 /* The running 512-bit accumulator. */
	counter     uint64             /* Cumulative bytes absorbed. */
	nonce       uint64             /* Chunks absorbed. */
	initialized bool               /* False until the first chunk overwrites state. */
	carry       [chunkSize]byte    /* Partial trailing chunk awaiting more input. */
	pending     int
}

var _ hash.Hash = (*Digest)(nil)

// New returns a fresh Digest.
func New() *Digest { return &Digest{} }

// Sum512 returns the CCSH digest of data in one shot.
func Sum512(data []byte) [DigestSize]byte {
	var d Digest
	d.Update(data)
	return d.checkSum()
}

// Start resets the accumulator, byte counter, chunk nonce, and initialized
// flag, then absorbs data. It is only needed to begin an independent
// computation on a reused Digest; a fresh Digest may call Update directly.
func (d *Digest) Start(data []byte) {
	*d = Digest{}
	d.Update(data)
}

// StartString is Start for string input; equal bytes yield equal digests.
func (d *Digest) StartString(data string) { d.Start([]byte(data)) }

// Update absorbs more input into the ongoing computation. Input is split into
// 32-byte chunks; a partial trailing chunk is carried until later calls
// complete it, so any split of the same byte sequence across Update calls
// produces the same digest. Empty input is a no-op.
func (d *Digest) Update(p []byte) {
	if d.pending > 0 {
		n := copy(d.carry[d.pending:], p)
		d.pending += n
		p = p[n:]
		if d.pending == chunkSize {
			d.absorb(d.carry[:])
			d.pending = 0
		}
	}
	for len(p) >= chunkSize {
		d.absorb(p[:chunkSize])
		p = p[chunkSize:]
	}
	if len(p) > 0 {
		d.pending = copy(d.carry[:], p)
	}
}

// UpdateString is Update for string input.
func (d *Digest) UpdateString(data string) { d.Update([]byte(data)) }

// absorb folds one full 32-byte chunk into the accumulator.
func (d *Digest) absorb(chunk []byte) {
	d.counter += chunkSize
	out := blockFor(chunk, d.counter, d.nonce)
	d.nonce++
	d.fold(&out)
}

func (d *Digest) fold(out *[stateWords]uint32) {
	if !d.initialized {
		d.state = *out
		d.initialized = true
		return
	}
	for i, w := range out {
		d.state[i] ^= w
	}
}

// snapshot returns the accumulator with any pending partial chunk folded into
// a copy: the partial chunk is absorbed as if the stream ended here, with the
// byte counter advanced by its length and the current nonce. Nothing is
// mutated, so absorption may continue afterward.
func (d *Digest) snapshot() [stateWords]uint32 {
	if d.pending == 0 {
		return d.state
	}
	out := blockFor(d.carry[:d.pending], d.counter+uint64(d.pending), d.nonce)
	if !d.initialized {
		return out
	}
	st := d.state
	for i, w := range out {
		st[i] ^= w
	}
	return st
}

func (d *Digest) checkSum() [DigestSize]byte {
	st := d.snapshot()
	var sum [DigestSize]byte
	for i, w := range st {
		/* Each word renders as a plain unsigned integer, most significant
		byte first, matching the %08x word order of Hexdump. */
		binary.BigEndian.PutUint32(sum[4*i:], w)
	}
	return sum
}

// Hexdump renders the current digest as a 128-character lowercase hex string,
// word 0 first, each word as exactly 8 zero-padded digits. It is a pure read
// and may be called at any point, including before any absorption, where it
// yields 128 '0' characters.
func (d *Digest) Hexdump() string {
	sum := d.checkSum()
	return hex.EncodeToString(sum[:])
}

// Write implements hash.Hash; it is Update and never fails.
func (d *Digest) Write(p []byte) (int, error) {
	d.Update(p)
	return len(p), nil
}

// Sum implements hash.Hash: it appends the 64-byte digest to buf without
// altering the computation, so further Write calls continue the same stream.
func (d *Digest) Sum(buf []byte) []byte {
	sum := d.checkSum()
	return append(buf, sum[:]...)
}

// Reset implements hash.Hash; it is Start with no input.
func (d *Digest) Reset() { *d = Digest{} }

func (d *Digest) Size() int { return DigestSize }

func (d *Digest) BlockSize() int { return chunkSize }
