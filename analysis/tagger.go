// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package analysis implements the segment-based classifier's tagger,
// segmenter, validators and entrance finder (components C3-C6). The
// orchestrator (package ethertracer) composes these into the final
// code/data verdict; none of these functions mutate their inputs or each
// other's outputs.
package analysis

import (
	"github.com/k-goe/ethertracer/bits"
	"github.com/k-goe/ethertracer/opcode"
)

// TagValidMnemonics marks every position whose byte resolves to a known
// opcode in the static table. It does not account for push-operand
// shadowing; the orchestrator intersects it with the complement of
// TagPushData before use.
func TagValidMnemonics(code []byte) bits.Mask {
	mask := make(bits.Mask, len(code))
	for i, b := range code {
		mask[i] = opcode.ByteToRecord(b).IsValid()
	}
	return mask
}

// TagInvalidMnemonics is the complement of TagValidMnemonics.
func TagInvalidMnemonics(code []byte) bits.Mask {
	return bits.Not(TagValidMnemonics(code))
}

// TagMnemonic marks every position whose byte equals the one assigned to
// name. It returns opcode.BadOpcodeName for an unknown mnemonic.
func TagMnemonic(code []byte, name string) (bits.Mask, error) {
	b, err := opcode.NameToByte(name)
	if err != nil {
		return nil, err
	}
	mask := make(bits.Mask, len(code))
	for i, c := range code {
		mask[i] = c == b
	}
	return mask, nil
}

// TagPushData marks the inline operand bytes of every PUSHk instruction.
// Scanning proceeds left to right; a PUSHk at position i marks
// i+1..min(i+k, N-1) and resumes at i+k+1, so a push byte inside another
// push's operand range is never reinterpreted as an instruction. A PUSHk
// truncated by end-of-stream still marks all available operand bytes; this
// is the only shadowing rule and takes priority over any other tag
// interpretation of the masked bytes.
func TagPushData(code []byte) bits.Mask {
	n := len(code)
	mask := make(bits.Mask, n)
	for i := 0; i < n; {
		if !opcode.IsPush(code[i]) {
			i++
			continue
		}
		k := opcode.PushLen(code[i])
		end := i + k
		if end > n-1 {
			end = n - 1
		}
		for j := i + 1; j <= end; j++ {
			mask[j] = true
		}
		i += k + 1
	}
	return mask
}
