/*
Copyright © 2025 G3ZOD

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/g3zod/CreateADIFTestFiles/internal/iogenerate"
	"github.com/g3zod/CreateADIFTestFiles/internal/iowatch"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getGenerateCmd returns the generate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getGenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate ADIF test QSO files",
		Long: `Generate ADI and ADX files with test QSOs.

This command:
  1. Reads the ADIF specification export (all.xml)
  2. Reads the DXCC entities with callsign templates (Entities.xml)
  3. Runs the record plan (~/.config/adiftest/plan.yaml by default)
     once per output style, in parallel
  4. Checks each file: ADX structure and values, ADI tags, values
     and 7-bit characters
  5. Writes ADIF_<ijk>_test_QSOs_<yyyy_MM_dd>.adi and .adx

A file that fails its checks is not written. The same seed, inputs and
date always produce the same files.

With --watch the files are generated again whenever the specification
export, the entities or the plan changes.

Examples:
  adiftest generate
  adiftest generate -s all.xml -e Entities.xml -o out
  adiftest generate --styles adx --date 2024-05-01 --report short
  adiftest generate --plan my-plan.toml --watch`,
		Aliases: []string{"gen"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runGenerate(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	f := generateCmd.Flags()
	f.StringP("spec", "s", "", "ADIF specification export (all.xml)")
	f.StringP("entities", "e", "", "DXCC entities document (Entities.xml)")
	f.StringP("plan", "p", "", "record plan, YAML or TOML")
	f.StringP("output", "o", "", "directory of the generated files")
	f.StringSlice("styles", nil, "output styles: adi, adx or both")
	f.Uint64("seed", 0, "seed of the random generator")
	f.StringP("date", "d", "", "day of the run YYYY-MM-DD (default today)")
	f.StringP("report", "r", "", "report level: none, short or full")
	f.String("program-id", "", "value of ${PROGRAMID}")
	f.IntP("jobs", "j", 0, "number of files generated at the same time")
	f.BoolP("watch", "w", false, "regenerate when an input file changes")

	return generateCmd
}

func runGenerate(cmd *cobra.Command) error {
	cfg.Update(flagOptions(cmd,
		specFlag, entitiesFlag, planFlag, outputFlag, stylesFlag,
		seedFlag, dateFlag, reportFlag, programIDFlag, jobsFlag, watchFlag,
	))

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := iogenerate.New(cfg)
	if cfg.Generate.Watch {
		return iowatch.New(cfg, gen).Watch(ctx)
	}
	_, err := gen.Generate(ctx)
	return err
}
