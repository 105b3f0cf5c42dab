// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package codec

import (
	"bytes"
	"errors"
	"testing"
)

func TestHexToBytes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []byte
		wantErr bool
	}{
		{"empty", "", []byte{}, false},
		{"lowercase no prefix", "5b00", []byte{0x5b, 0x00}, false},
		{"uppercase no prefix", "5B00", []byte{0x5b, 0x00}, false},
		{"0x prefix", "0x5b00", []byte{0x5b, 0x00}, false},
		{"odd length", "5b0", nil, true},
		{"non-hex digit", "5bzz", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := HexToBytes(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("HexToBytes(%q) = %x, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("HexToBytes(%q) returned error: %v", tc.in, err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Errorf("HexToBytes(%q) = %x, want %x", tc.in, got, tc.want)
			}
		})
	}
}

func TestBitStringToBytes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []byte
		wantErr error
	}{
		{"empty", "", []byte{}, nil},
		{"one byte", "01011011", []byte{0x5b}, nil},
		{"two bytes", "0101101100000000", []byte{0x5b, 0x00}, nil},
		{"not multiple of 8", "0101", nil, errBitStringLength},
		{"bad digit", "0000000x", nil, errBitStringDigit},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BitStringToBytes(tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("BitStringToBytes(%q) error = %v, want %v", tc.in, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BitStringToBytes(%q) returned error: %v", tc.in, err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Errorf("BitStringToBytes(%q) = %x, want %x", tc.in, got, tc.want)
			}
		})
	}
}
