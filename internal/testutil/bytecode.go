// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package testutil provides deterministic, seeded random bytecode
// generators for the property tests in package analysis.
package testutil

import (
	"pgregory.net/rand"

	"github.com/k-goe/ethertracer/opcode"
)

// RandomBytes returns size bytes drawn uniformly from the full byte range,
// with no regard for opcode validity. It is the adversarial generator: most
// samples will contain invalid mnemonics, truncated pushes and dangling
// jumps.
func RandomBytes(rnd *rand.Rand, size int) []byte {
	data := make([]byte, size)
	_, _ = rnd.Read(data) // rnd.Read never returns an error
	return data
}

// wellKnownOpcodes lists single-byte instructions (no operand) safe to
// place anywhere in a well-formed sample.
var wellKnownOpcodes = []byte{
	opcode.StopByte,
	0x01, // ADD
	0x50, // POP
	opcode.JumpdestByte,
}

// RandomWellFormedBytecode builds size bytes of syntactically valid EVM
// bytecode: every PUSHk instruction carries a full k-byte operand (never
// truncated), and all other bytes are drawn from wellKnownOpcodes. This is
// the generator used to check properties that only hold over valid input,
// such as segment-id monotonicity and truncation monotonicity.
func RandomWellFormedBytecode(rnd *rand.Rand, size int) []byte {
	code := make([]byte, 0, size)
	for len(code) < size {
		if rnd.Intn(4) == 0 {
			pushLen := 1 + rnd.Intn(32)
			if len(code)+1+pushLen > size {
				pushLen = size - len(code) - 1
			}
			if pushLen < 0 {
				break
			}
			code = append(code, opcode.Push1Byte+byte(pushLen-1))
			operand := make([]byte, pushLen)
			_, _ = rnd.Read(operand)
			code = append(code, operand...)
			continue
		}
		code = append(code, wellKnownOpcodes[rnd.Intn(len(wellKnownOpcodes))])
	}
	return code[:size]
}

// TruncatePrefix returns the first n bytes of code, clamped to len(code).
// Used to check the validator-monotonicity property: truncating at a
// terminator boundary must not change the verdict of the surviving prefix.
func TruncatePrefix(code []byte, n int) []byte {
	if n > len(code) {
		n = len(code)
	}
	return code[:n]
}
