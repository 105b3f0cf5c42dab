// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package analysis

import (
	"github.com/holiman/uint256"

	"github.com/k-goe/ethertracer/bits"
)

// SegmentsWithHit propagates a local violation to every position sharing a
// segment id with a hit. The returned mask is true for positions that
// passed (their segment has no hit anywhere).
func SegmentsWithHit(segments []int, hit bits.Mask) bits.Mask {
	hitSegments := make(map[int]bool)
	for i, h := range hit {
		if h {
			hitSegments[segments[i]] = true
		}
	}
	out := make(bits.Mask, len(segments))
	for i, seg := range segments {
		out[i] = !hitSegments[seg]
	}
	return out
}

// InvalidMnemonicCheck is V1: a segment fails if any of its bytes neither
// decode to a known opcode nor are a push immediate.
func InvalidMnemonicCheck(segments []int, invalidMnemonicMask, pushDataMask bits.Mask) bits.Mask {
	hit := bits.And(invalidMnemonicMask, bits.Not(pushDataMask))
	return SegmentsWithHit(segments, hit)
}

// PushJumpRangeCheck is V2: for every push-immediate run immediately
// followed by JUMP, the folded value must not exceed the length of the
// bytecode. A segment containing an out-of-range jump is invalidated.
func PushJumpRangeCheck(code []byte, segments []int, pushDataMask, jumpMask bits.Mask) bits.Mask {
	n := len(code)
	hit := make(bits.Mask, n)
	length := uint256.NewInt(uint64(n))

	for _, run := range bits.CompoundSubsets(pushDataMask) {
		address := run.End + 1
		if address >= n || !jumpMask[address] {
			continue
		}
		target := bits.FoldBigEndian(code[run.Start : run.End+1])
		if target.Gt(length) {
			hit[address] = true
		}
	}
	return SegmentsWithHit(segments, hit)
}

// UnreachableJumpdestCheck is V3: a declared JUMPDEST is reachable if some
// entrance offset plus some push-immediate value lands exactly on it.
// Segments containing an unreachable JUMPDEST are invalidated.
func UnreachableJumpdestCheck(code []byte, segments []int, jumpdestMask, pushDataMask, entranceMask bits.Mask) bits.Mask {
	pushValues := PushValueSet(code, pushDataMask)
	entrances := positions(entranceMask)

	reachable := make(bits.Mask, len(code))
	for _, p := range positions(jumpdestMask) {
		for _, e := range entrances {
			if p < e {
				continue
			}
			if pushValues[*uint256.NewInt(uint64(p-e))] {
				reachable[p] = true
				break
			}
		}
	}

	hit := bits.And(jumpdestMask, bits.Not(reachable))
	return SegmentsWithHit(segments, hit)
}

// positions returns the indices where mask holds true.
func positions(mask bits.Mask) []int {
	var out []int
	for i, v := range mask {
		if v {
			out = append(out, i)
		}
	}
	return out
}

// PushValueSet folds every push-immediate run into a set of distinct
// address candidates. Duplicate values collapse to a single entry, as
// required by the set semantics of the reachability and entrance-finding
// checks.
func PushValueSet(code []byte, pushDataMask bits.Mask) map[uint256.Int]bool {
	set := make(map[uint256.Int]bool)
	for _, run := range bits.CompoundSubsets(pushDataMask) {
		set[bits.FoldBigEndian(code[run.Start:run.End+1])] = true
	}
	return set
}

// JumpdestPositions returns the indices where jumpdestMask holds true.
func JumpdestPositions(jumpdestMask bits.Mask) []int {
	return positions(jumpdestMask)
}
