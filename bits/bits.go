// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package bits provides the mask-level primitives shared by the tagger,
// segmenter and validators: run extraction over boolean vectors, big-endian
// byte folding, and the JUMPDEST/terminator segment numbering rule.
package bits

import "github.com/holiman/uint256"

// Mask is a per-position boolean predicate over a bytecode stream. Every
// mask produced by this module has the same length as the bytecode it was
// derived from.
type Mask []bool

// Run is a maximal contiguous range [Start, End] (inclusive) of positions
// where a mask holds true.
type Run struct {
	Start int
	End   int
}

// Len returns the number of positions covered by the run.
func (r Run) Len() int {
	return r.End - r.Start + 1
}

// CompoundSubsets returns the ordered list of maximal runs where mask is
// true. It is empty when mask is all-false.
func CompoundSubsets(mask Mask) []Run {
	var runs []Run
	inRun := false
	start := 0
	for i, v := range mask {
		switch {
		case v && !inRun:
			inRun = true
			start = i
		case !v && inRun:
			inRun = false
			runs = append(runs, Run{Start: start, End: i - 1})
		}
	}
	if inRun {
		runs = append(runs, Run{Start: start, End: len(mask) - 1})
	}
	return runs
}

// FoldBigEndian reconstructs the non-negative integer whose base-256 digits
// are b, most-significant byte first. An empty slice folds to zero. b may be
// up to 32 bytes, the maximum width of an EVM push immediate.
func FoldBigEndian(b []byte) uint256.Int {
	var v uint256.Int
	v.SetBytes(b)
	return v
}

// SegmentNumbering assigns a non-decreasing segment id to every position,
// per the JUMPDEST-opens/terminator-closes rule: start marks the first
// position of a new segment, end marks the last position of the current
// one. A position carrying both flags is treated as a start. start and end
// must have equal length; the returned vector has that same length.
func SegmentNumbering(start, end Mask) []int {
	n := len(start)
	ids := make([]int, n)
	c := 0
	for i := 0; i < n; i++ {
		switch {
		case start[i]:
			c++
			ids[i] = c
		case end[i]:
			ids[i] = c
			c++
		default:
			ids[i] = c
		}
	}
	return ids
}

// And returns the pointwise logical AND of masks of equal length.
func And(masks ...Mask) Mask {
	if len(masks) == 0 {
		return nil
	}
	res := make(Mask, len(masks[0]))
	for i := range res {
		res[i] = true
		for _, m := range masks {
			res[i] = res[i] && m[i]
		}
	}
	return res
}

// Or returns the pointwise logical OR of masks of equal length.
func Or(masks ...Mask) Mask {
	if len(masks) == 0 {
		return nil
	}
	res := make(Mask, len(masks[0]))
	for i := range res {
		for _, m := range masks {
			res[i] = res[i] || m[i]
		}
	}
	return res
}

// Not returns the pointwise logical complement of mask.
func Not(mask Mask) Mask {
	res := make(Mask, len(mask))
	for i, v := range mask {
		res[i] = !v
	}
	return res
}
