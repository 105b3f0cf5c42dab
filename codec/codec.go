// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package codec implements the external input adapters named in the
// analyzer's interface spec: decoding a hex or bitstring representation of a
// deployed contract into the flat byte sequence Analyze operates on. These
// adapters are collaborators of the analyzer, never imported by it.
package codec

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// HexToBytes decodes a hex-encoded contract, two hex digits per byte, MSB
// first. A leading "0x"/"0X" prefix is tolerated and stripped; the
// remaining digit count must be even. Malformed input (odd length,
// non-hex-digit runes) is reported via the returned error.
func HexToBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hexutil.Decode("0x" + s)
}

// BitStringToBytes decodes a bitstring of '0'/'1' runes into bytes, most
// significant bit first. The length of s must be a multiple of 8.
func BitStringToBytes(s string) ([]byte, error) {
	if len(s)%8 != 0 {
		return nil, errBitStringLength
	}
	out := make([]byte, len(s)/8)
	for i, r := range s {
		var bit byte
		switch r {
		case '0':
			bit = 0
		case '1':
			bit = 1
		default:
			return nil, errBitStringDigit
		}
		out[i/8] = out[i/8]<<1 | bit
	}
	return out, nil
}
