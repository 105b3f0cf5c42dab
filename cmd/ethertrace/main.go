// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Command ethertrace is a thin CLI harness over package ethertracer: it
// decodes bytecode from a hex or bitstring flag, runs the classifier, and
// prints the report. It wires no analysis logic of its own.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"

	"github.com/k-goe/ethertracer"
	"github.com/k-goe/ethertracer/analysis"
	"github.com/k-goe/ethertracer/codec"
)

var hexFlag = &cli.StringFlag{
	Name:  "hex",
	Usage: "bytecode as a hex string (two digits per byte, optional 0x prefix)",
}

var bitsFlag = &cli.StringFlag{
	Name:  "bits",
	Usage: "bytecode as a bitstring (length a multiple of 8, MSB first)",
}

var thresholdFlag = &cli.Float64Flag{
	Name:  "threshold",
	Usage: "entrance finder target JUMPDEST coverage fraction, in (0, 1]",
	Value: analysis.DefaultEntranceThreshold,
}

var reportFlag = &cli.StringFlag{
	Name:  "report",
	Usage: "path to write the classification report to",
	Value: "ethertracer_analyze.txt",
}

func main() {
	app := &cli.App{
		Name:      "ethertrace",
		Usage:     "classifies EVM bytecode positions as code or data",
		Copyright: "(c) 2024 Fantom Foundation",
		Flags:     []cli.Flag{hexFlag, bitsFlag, thresholdFlag, reportFlag},
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	code, err := decodeInput(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := ethertracer.Analyze(code, ethertracer.Options{
		StopThreshold: ctx.Float64(thresholdFlag.Name),
		ReportPath:    ctx.String(reportFlag.Name),
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	elapsed := time.Since(start)

	fmt.Print(result.Report)

	rate := float64(len(code)) / elapsed.Seconds()
	fmt.Printf(
		"\nanalyzed %d bytes in %s (~%sB/s), report written to %s\n",
		len(code), elapsed, unitconv.FormatPrefix(rate, unitconv.SI, 0), ctx.String(reportFlag.Name),
	)
	return nil
}

func decodeInput(ctx *cli.Context) ([]byte, error) {
	hexInput := ctx.String(hexFlag.Name)
	bitsInput := ctx.String(bitsFlag.Name)

	switch {
	case hexInput != "" && bitsInput != "":
		return nil, fmt.Errorf("only one of --hex or --bits may be given")
	case hexInput != "":
		return codec.HexToBytes(hexInput)
	case bitsInput != "":
		return codec.BitStringToBytes(bitsInput)
	default:
		return nil, fmt.Errorf("one of --hex or --bits is required")
	}
}
