// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package ethertracer classifies every byte of an EVM contract's bytecode as
// code or data. It composes the tagger, segmenter, validators and entrance
// finder in package analysis (the orchestrator role, C7 in the design) and
// renders the result through package report.
package ethertracer

import (
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/k-goe/ethertracer/analysis"
	"github.com/k-goe/ethertracer/bits"
	"github.com/k-goe/ethertracer/opcode"
	"github.com/k-goe/ethertracer/report"
)

// analysisCacheCapacity bounds the number of distinct (bytecode, threshold)
// analyses kept in memory, mirroring the codeCacheCapacity pattern used by
// the interpreter's bytecode-to-instruction conversion cache.
const analysisCacheCapacity = 4096

type cacheKey struct {
	hash      [32]byte
	threshold float64
}

type cached struct {
	codeMask bits.Mask
	rows     []report.Row
}

var cache *lru.Cache[cacheKey, cached]

func init() {
	c, err := lru.New[cacheKey, cached](analysisCacheCapacity)
	if err != nil {
		panic(fmt.Errorf("ethertracer: failed to create analysis cache: %v", err))
	}
	cache = c
}

// Options controls an Analyze call.
type Options struct {
	// StopThreshold is the entrance finder's target JUMPDEST coverage
	// fraction, in (0, 1]. Zero selects analysis.DefaultEntranceThreshold.
	StopThreshold float64
	// ReportPath, if non-empty, writes the rendered report to this file
	// path in addition to returning it in Result.Report.
	ReportPath string
}

// Result is the outcome of an Analyze call.
type Result struct {
	// CodeMask is true at every position classified as code, false at
	// every position classified as data. Its length always equals the
	// length of the analyzed bytecode.
	CodeMask bits.Mask
	// Report is the rendered, fixed-width classification report.
	Report string
}

// Analyze classifies every byte of code as code or data and renders the
// accompanying report. It is a pure function of code and opts: repeated
// calls with the same arguments return identical results.
func Analyze(code []byte, opts Options) (Result, error) {
	if len(code) == 0 {
		rows := []report.Row(nil)
		result := Result{CodeMask: bits.Mask{}, Report: report.Render(rows)}
		if opts.ReportPath != "" {
			if err := report.WriteFile(opts.ReportPath, rows); err != nil {
				return Result{}, err
			}
		}
		return result, nil
	}

	threshold := opts.StopThreshold
	if threshold == 0 {
		threshold = analysis.DefaultEntranceThreshold
	}

	key := cacheKey{hash: sha256.Sum256(code), threshold: threshold}
	c, ok := cache.Get(key)
	if !ok {
		c = compute(code, threshold)
		cache.Add(key, c)
	}

	result := Result{CodeMask: c.codeMask, Report: report.Render(c.rows)}
	if opts.ReportPath != "" {
		if err := report.WriteFile(opts.ReportPath, c.rows); err != nil {
			return Result{}, err
		}
	}
	return result, nil
}

// compute runs the full classification pipeline (§4.7 of the analyzer
// design): tag, segment, validate, and find entrances, then combine the
// three validator outputs into the final verdict.
func compute(code []byte, threshold float64) cached {
	pushData := analysis.TagPushData(code)
	notPushData := bits.Not(pushData)

	invalidMnemonic := bits.And(analysis.TagInvalidMnemonics(code), notPushData)

	jumpdestMask := mustTag(code, "JUMPDEST", notPushData)
	jumpMask := mustTag(code, "JUMP", notPushData)
	stopMask := mustTag(code, "STOP", notPushData)
	returnMask := mustTag(code, "RETURN", notPushData)
	selfdestructMask := mustTag(code, "SELFDESTRUCT", notPushData)

	startMask := jumpdestMask
	endMask := bits.Or(jumpMask, stopMask, returnMask, selfdestructMask)
	segments := analysis.Segment(startMask, endMask)

	pushValues := analysis.PushValueSet(code, pushData)
	jumpdestPositions := analysis.JumpdestPositions(jumpdestMask)
	entrances := analysis.FindEntrances(len(code), pushValues, jumpdestPositions, threshold)

	v1 := analysis.InvalidMnemonicCheck(segments, invalidMnemonic, pushData)
	v2 := analysis.PushJumpRangeCheck(code, segments, pushData, jumpMask)
	v3 := analysis.UnreachableJumpdestCheck(code, segments, jumpdestMask, pushData, entrances)

	finalMask := bits.And(v1, v2, v3)

	rows := buildRows(code, finalMask, pushData, segments, entrances, v1, v2, v3)

	return cached{codeMask: finalMask, rows: rows}
}

// mustTag resolves a well-known mnemonic's mask and shadows it with the
// push-data complement. The mnemonic names passed here are compile-time
// constants known to exist in the opcode table, so a lookup failure would
// be a programmer error.
func mustTag(code []byte, name string, notPushData bits.Mask) bits.Mask {
	mask, err := analysis.TagMnemonic(code, name)
	if err != nil {
		panic(fmt.Errorf("ethertracer: opcode table missing well-known mnemonic %q: %w", name, err))
	}
	return bits.And(mask, notPushData)
}

// buildRows assembles the report rows, resolving each position's active
// entrance and the first violated check (priority order V3, V1, V2).
func buildRows(code []byte, finalMask, pushData bits.Mask, segments []int, entrances, v1, v2, v3 bits.Mask) []report.Row {
	rows := make([]report.Row, len(code))
	entranceSeen := false
	counter := 0

	for i, b := range code {
		if entrances[i] {
			entranceSeen = true
			counter = 0
		}
		contractAddress := "x"
		if entranceSeen {
			contractAddress = fmt.Sprintf("%d", counter)
			counter++
		}

		rows[i] = report.Row{
			Address:         i,
			ContractAddress: contractAddress,
			Instruction:     instructionText(b, finalMask[i], pushData[i]),
			IsCode:          finalMask[i],
			Segment:         segments[i],
			Finding:         finding(v1[i], v2[i], v3[i]),
		}
	}
	return rows
}

func instructionText(b byte, isCode, isPushData bool) string {
	if isCode && !isPushData {
		return opcode.ByteToRecord(b).Name
	}
	return fmt.Sprintf("0x%02x", b)
}

func finding(v1pass, v2pass, v3pass bool) string {
	switch {
	case !v3pass:
		return report.FindingJumpdestUnreached
	case !v1pass:
		return report.FindingInvalidMnemonic
	case !v2pass:
		return report.FindingJumpOutOfRange
	default:
		return report.FindingNone
	}
}
