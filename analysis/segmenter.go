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

import "github.com/k-goe/ethertracer/bits"

// Segment partitions the bytecode into basic blocks delimited by start
// positions (JUMPDEST, push-shadowed) and end positions (terminators,
// push-shadowed). It is agnostic to opcode meaning: callers are responsible
// for building start/end from the masks that carry that meaning. See
// bits.SegmentNumbering for the exact numbering rule, including the
// start-wins tie-break when a position carries both flags.
func Segment(start, end bits.Mask) []int {
	return bits.SegmentNumbering(start, end)
}
