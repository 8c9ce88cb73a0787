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
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/g3zod/CreateADIFTestFiles/internal/iocatalog"
	"github.com/g3zod/CreateADIFTestFiles/internal/iocheck"
	"github.com/g3zod/CreateADIFTestFiles/internal/iofs"
	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCheckCmd returns the check command.
func getCheckCmd() *cobra.Command {
	var (
		adx   bool
		files []string
	)

	checkCmd := &cobra.Command{
		Use:   "check [FIELD VALUE]...",
		Short: "Check field values or ADIF files against the specification",
		Long: `Check values of ADIF fields, or whole ADI and ADX files, against the
data types, ranges and enumerations of the specification export.

Every pair and every file is checked even after a failure. The command
fails when any of them is invalid.

Values are checked as in ADI files unless --adx is given, which allows
international characters in the fields of Intl data types.

Examples:
  adiftest check QSO_DATE 20240229 TIME_ON 2400 CQZ 41
  adiftest check --adx NAME_INTL Bób
  adiftest check -f ADIF_315_test_QSOs_2024_05_01.adx`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args)%2 != 0 {
				return fmt.Errorf("arguments must be FIELD VALUE pairs, got %d",
					len(args))
			}
			if len(args) == 0 && len(files) == 0 {
				return fmt.Errorf("give FIELD VALUE pairs or --file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(flagOptions(cmd, specFlag))

			cat, err := iocatalog.Load(cfg.Generate.SpecPath)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			out := cmd.OutOrStdout()
			failed := checkValues(out, cat, args, !adx)
			for _, f := range files {
				ok, err := checkFile(out, cat, f)
				if err != nil {
					gn.PrintErrorMessage(err)
					return err
				}
				if !ok {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d checks failed", failed)
			}
			return nil
		},
	}

	checkCmd.Flags().StringP("spec", "s", "",
		"ADIF specification export (all.xml)")
	checkCmd.Flags().BoolVar(&adx, "adx", false,
		"check values as in ADX files")
	checkCmd.Flags().StringSliceVarP(&files, "file", "f", nil,
		"ADI or ADX files to check")

	return checkCmd
}

// checkValues prints a line for every FIELD VALUE pair and returns the
// number of invalid values.
func checkValues(
	w io.Writer,
	cat *adif.Catalog,
	args []string,
	tagStyle bool,
) int {
	var failed int
	for i := 0; i < len(args); i += 2 {
		field, value := strings.ToUpper(args[i]), args[i+1]
		if err := cat.Check(field, value, tagStyle); err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s %q: %s\n", field, value, err)
			continue
		}
		fmt.Fprintf(w, "OK   %s %q\n", field, value)
	}
	return failed
}

// checkFile checks an ADI or ADX file chosen by its extension.
func checkFile(w io.Writer, cat *adif.Catalog, path string) (bool, error) {
	data, err := iofs.ReadFile(path)
	if err != nil {
		return false, err
	}
	var diags []iocheck.Diagnostic
	if strings.EqualFold(filepath.Ext(path), ".adx") {
		diags = iocheck.CheckADX(data, cat)
	} else {
		diags = iocheck.CheckADI(data, cat)
	}
	if len(diags) == 0 {
		fmt.Fprintf(w, "OK   %s\n", path)
		return true, nil
	}
	fmt.Fprintf(w, "FAIL %s: %d problems\n", path, len(diags))
	for _, d := range diags {
		fmt.Fprintf(w, "  %s\n", d)
	}
	return false, nil
}
