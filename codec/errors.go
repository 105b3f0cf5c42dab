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

import "github.com/k-goe/ethertracer/internal/ctxerr"

const (
	errBitStringLength = ctxerr.ConstErr("codec: bitstring length must be a multiple of 8")
	errBitStringDigit  = ctxerr.ConstErr("codec: bitstring must contain only '0' and '1'")
)
