package main

import (
	"encoding/binary"
	"fmt"
	ccsh "github.com/DylanMcBean/CounterChaChaStreamHash"
	"math/big"
	"math/bits"
	"math/rand"
)

// Copyright © 2023 Dylan McBean. Licensed under the Apache-2.0 license.

const ints = uint32(5e4)

var (
	iBytes   = make([]byte, 4)
	rBytes   []byte
	integers = map[uint32]*big.Int{}
	random   = map[uint32]*big.Int{}
)

func makeBytes(size int64) {
	rBytes = make([]byte, size)
	if _, err := rand.Read(rBytes); err != nil {
		panic("failed to generate random data")
	}
}

// printMeanBias reports the mean per-bit deviation from a 50% set rate across
// a population of digests, as a percentage of the expected count.
func printMeanBias(hashes map[uint32]*big.Int, ln int) float64 {
	tally := make([]int32, ln)
	for i := range hashes {
		for i2 := ln - 1; i2 >= 0; i2-- {
			if hashes[i].Bit(i2) == 1 {
				tally[i2]++
			}
		}
	}
	var total int32
	for i := range tally {
		tally[i] = tally[i] - int32(ints>>1)
		if tally[i] < 0 {
			total += tally[i] * -1
		} else {
			total += tally[i]
		}
	}
	return (float64(total) / float64(ln)) / float64(ints>>1) * 100
}

func biasTest() {
	const testLength = ccsh.DigestSize * 8
	for i := ints; i > 0; i-- {
		binary.BigEndian.PutUint32(iBytes, i)
		sum := ccsh.Sum512(iBytes)
		integers[i] = big.NewInt(0).SetBytes(sum[:])
		makeBytes(1024)
		sum = ccsh.Sum512(rBytes)
		random[i] = big.NewInt(0).SetBytes(sum[:])
	}
	fmt.Printf("Integer input Monobit test:  %5.3f%%\n", printMeanBias(integers, testLength))
	fmt.Printf("Random input Monobit test:   %5.3f%%\n", printMeanBias(random, testLength))
}

// avalancheTest flips one random input bit per trial and reports the mean
// fraction of the 512 output bits that change; an ideal mixer sits at 50%.
func avalancheTest() {
	const trials = 1 << 12
	var total float64
	for i := 0; i < trials; i++ {
		makeBytes(64)
		ref := ccsh.Sum512(rBytes)
		bit := rand.Intn(len(rBytes) * 8)
		rBytes[bit/8] ^= 1 << (bit % 8)
		sum := ccsh.Sum512(rBytes)
		diff := 0
		for i2 := range sum {
			diff += bits.OnesCount8(ref[i2] ^ sum[i2])
		}
		total += float64(diff) / (ccsh.DigestSize * 8)
	}
	fmt.Printf("Single-bit avalanche:        %5.3f%%\n", total/trials*100)
}
