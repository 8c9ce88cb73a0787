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
	"github.com/g3zod/CreateADIFTestFiles/pkg/config"
	"github.com/spf13/cobra"
)

// funcFlag converts a flag given on the command line into config options.
// Flags that were not set keep the values of config.yaml and environment.
type funcFlag func(cmd *cobra.Command) []config.Option

func specFlag(cmd *cobra.Command) []config.Option {
	return stringFlag(cmd, "spec", config.OptGenerateSpecPath)
}

func entitiesFlag(cmd *cobra.Command) []config.Option {
	return stringFlag(cmd, "entities", config.OptGenerateEntitiesPath)
}

func planFlag(cmd *cobra.Command) []config.Option {
	return stringFlag(cmd, "plan", config.OptGeneratePlanPath)
}

func outputFlag(cmd *cobra.Command) []config.Option {
	return stringFlag(cmd, "output", config.OptGenerateOutputDir)
}

func dateFlag(cmd *cobra.Command) []config.Option {
	return stringFlag(cmd, "date", config.OptGenerateDate)
}

func reportFlag(cmd *cobra.Command) []config.Option {
	return stringFlag(cmd, "report", config.OptGenerateReport)
}

func programIDFlag(cmd *cobra.Command) []config.Option {
	return stringFlag(cmd, "program-id", config.OptGenerateProgramID)
}

func stylesFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("styles") {
		return nil
	}
	styles, _ := cmd.Flags().GetStringSlice("styles")
	return []config.Option{config.OptGenerateStyles(styles)}
}

func seedFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("seed") {
		return nil
	}
	seed, _ := cmd.Flags().GetUint64("seed")
	return []config.Option{config.OptGenerateSeed(seed)}
}

func jobsFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("jobs") {
		return nil
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	return []config.Option{config.OptJobsNumber(jobs)}
}

func watchFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("watch") {
		return nil
	}
	watch, _ := cmd.Flags().GetBool("watch")
	return []config.Option{config.OptGenerateWatch(watch)}
}

func stringFlag(
	cmd *cobra.Command,
	name string,
	opt func(string) config.Option,
) []config.Option {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	s, _ := cmd.Flags().GetString(name)
	return []config.Option{opt(s)}
}

// flagOptions collects options of all given flags in order.
func flagOptions(cmd *cobra.Command, flags ...funcFlag) []config.Option {
	var res []config.Option
	for _, f := range flags {
		res = append(res, f(cmd)...)
	}
	return res
}
