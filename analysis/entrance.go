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

// DefaultEntranceThreshold is the fraction of JUMPDESTs the entrance finder
// tries to explain before stopping, absent an explicit override.
const DefaultEntranceThreshold = 0.98

// FindEntrances searches for base offsets such that push-immediate values,
// read as addresses relative to those bases, land on known JUMPDEST
// positions. It implements the greedy maximum-coverage search of the
// analyzer's entrance-discovery component: at most one full pass over
// candidate offsets per round, picking the offset explaining the most
// still-unexplained JUMPDESTs, breaking ties toward the lowest address.
//
// codeLen is the length of the bytecode the offsets range over. pushValues
// is the deduplicated set of push-immediate address candidates (see
// PushValueSet). jumpdestPositions is the set of declared JUMPDEST indices.
// tau is the target coverage fraction in (0, 1]; the search stops early
// once it is met, or once a round makes no further progress.
func FindEntrances(codeLen int, pushValues map[uint256.Int]bool, jumpdestPositions []int, tau float64) bits.Mask {
	mask := make(bits.Mask, codeLen)

	jTotal := len(jumpdestPositions)
	if jTotal == 0 {
		return mask
	}

	remaining := make(map[int]bool, jTotal)
	for _, j := range jumpdestPositions {
		remaining[j] = true
	}

	hitsTotal := 0
	for float64(hitsTotal)/float64(jTotal) < tau && len(remaining) > 0 {
		bestOffset := 0
		bestScore := -1
		for b := 0; b < codeLen; b++ {
			score := 0
			for j := range remaining {
				if j < b {
					continue
				}
				if pushValues[*uint256.NewInt(uint64(j-b))] {
					score++
				}
			}
			if score > bestScore {
				bestScore = score
				bestOffset = b
			}
		}

		mask[bestOffset] = true
		hitsTotal += bestScore

		for j := range remaining {
			if j < bestOffset {
				continue
			}
			if pushValues[*uint256.NewInt(uint64(j-bestOffset))] {
				delete(remaining, j)
			}
		}

		if bestScore == 0 {
			break
		}
	}

	return mask
}
