// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package report

//go:generate mockgen -source sink.go -destination sink_mock.go -package report

// Sink is the collaborator that persists a rendered report. FileSink is the
// filesystem implementation and MockSink the generated mock. Analyze does
// not use this interface; it calls WriteFile directly.
type Sink interface {
	WriteReport(rows []Row) error
}

// FileSink writes reports to a fixed path on the local filesystem.
type FileSink struct {
	Path string
}

// WriteReport implements Sink.
func (s FileSink) WriteReport(rows []Row) error {
	return WriteFile(s.Path, rows)
}
