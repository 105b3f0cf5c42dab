// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package report renders the textual, fixed-width classification report
// described by the analyzer's external interface: one line per bytecode
// position, a single header row, and a Finding column naming the first
// violated validator in priority order (unreachable JUMPDEST, invalid
// mnemonic, out-of-range jump).
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/k-goe/ethertracer/internal/ctxerr"
)

// ReportIOFailure is returned by WriteFile when the destination file could
// not be written.
const ReportIOFailure = ctxerr.ConstErr("report: failed to write report file")

// Finding values, in the priority order the analyzer must apply when a
// position's segment fails more than one check.
const (
	FindingJumpdestUnreached = "JUMPDEST NEVER REACHED"
	FindingInvalidMnemonic   = "INVALID MNEMONIC OCCURS"
	FindingJumpOutOfRange    = "JUMP OUT OF RANGE"
	FindingNone              = " "
)

const columnWidth = 30

var header = []string{"Address", "Contract Address", "Instruction", "Code/Data", "Segment", "Finding"}

// Row is one line of the classification report.
type Row struct {
	Address         int
	ContractAddress string // running counter since the active entrance, or "x"
	Instruction     string // mnemonic for a code byte that is not a push immediate, otherwise "0x.."
	IsCode          bool
	Segment         int
	Finding         string
}

func (r Row) codeOrData() string {
	if r.IsCode {
		return "CODE"
	}
	return "DATA"
}

func (r Row) columns() []string {
	return []string{
		fmt.Sprintf("%d", r.Address),
		r.ContractAddress,
		r.Instruction,
		r.codeOrData(),
		fmt.Sprintf("segment %d", r.Segment),
		r.Finding,
	}
}

func padColumn(s string) string {
	if len(s) >= columnWidth {
		return s
	}
	return s + strings.Repeat(" ", columnWidth-len(s))
}

func writeLine(b *strings.Builder, columns []string) {
	for i, c := range columns {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padColumn(c))
	}
	b.WriteByte('\n')
}

// Render renders rows (in Address order) to the fixed-width text format,
// including the header row. An empty rows slice still produces the header,
// matching the EmptyInput behaviour described for Analyze.
func Render(rows []Row) string {
	var b strings.Builder
	writeLine(&b, header)
	for _, row := range rows {
		writeLine(&b, row.columns())
	}
	return b.String()
}

// WriteFile renders rows and writes them to path, truncating any existing
// file. A write failure is wrapped in ReportIOFailure.
func WriteFile(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ReportIOFailure, err)
	}
	defer f.Close()

	if _, err := f.WriteString(Render(rows)); err != nil {
		return fmt.Errorf("%w: %v", ReportIOFailure, err)
	}
	return nil
}
