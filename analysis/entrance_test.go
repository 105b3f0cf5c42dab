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
	"testing"

	"github.com/holiman/uint256"
)

func u256set(values ...uint64) map[uint256.Int]bool {
	set := make(map[uint256.Int]bool, len(values))
	for _, v := range values {
		set[*uint256.NewInt(v)] = true
	}
	return set
}

func TestFindEntrances_NoJumpdests(t *testing.T) {
	mask := FindEntrances(10, u256set(), nil, DefaultEntranceThreshold)
	for i, v := range mask {
		if v {
			t.Fatalf("expected all-false mask, position %d set", i)
		}
	}
}

func TestFindEntrances_SingleBaseExplainsAll(t *testing.T) {
	// Every JUMPDEST is addressed relative to base 0.
	values := u256set(4, 8)
	jumpdests := []int{4, 8}

	mask := FindEntrances(16, values, jumpdests, DefaultEntranceThreshold)
	if !mask[0] {
		t.Fatalf("expected entrance at offset 0, got mask %v", mask)
	}
	count := 0
	for _, v := range mask {
		if v {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one entrance, got %d", count)
	}
}

func TestFindEntrances_TwoConcatenatedContracts(t *testing.T) {
	// Contract A occupies [0, 0x40) and is entered at 0; contract B
	// occupies [0x40, 0x100) and is entered at 0x40. Each push-immediate
	// addresses a JUMPDEST relative to its own base only.
	values := u256set(0x10, 0x20, 0x10, 0x20) // offsets within each contract
	jumpdests := []int{0x10, 0x20, 0x40 + 0x10, 0x40 + 0x20}

	mask := FindEntrances(0x100, values, jumpdests, 0.98)
	if !mask[0x00] || !mask[0x40] {
		t.Fatalf("expected entrances at 0x00 and 0x40, got mask with true positions: %v", truePositions(mask))
	}
	count := 0
	for _, v := range mask {
		if v {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected exactly two entrances, got %d: %v", count, truePositions(mask))
	}
}

func TestFindEntrances_TerminatesOnZeroProgress(t *testing.T) {
	// No push value ever equals any JUMPDEST minus any offset: the finder
	// must still terminate rather than loop forever.
	values := u256set(999999)
	jumpdests := []int{1, 2, 3}

	mask := FindEntrances(8, values, jumpdests, 0.98)
	count := 0
	for _, v := range mask {
		if v {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one (zero-score) entrance before terminating, got %d", count)
	}
}

func TestFindEntrances_Deterministic(t *testing.T) {
	values := u256set(1, 2, 3)
	jumpdests := []int{1, 2, 3, 11, 12, 13}

	first := FindEntrances(16, values, jumpdests, 0.98)
	second := FindEntrances(16, values, jumpdests, 0.98)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("FindEntrances is not deterministic at position %d", i)
		}
	}
}

func truePositions(mask []bool) []int {
	var out []int
	for i, v := range mask {
		if v {
			out = append(out, i)
		}
	}
	return out
}
