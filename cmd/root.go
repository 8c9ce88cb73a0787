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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/g3zod/CreateADIFTestFiles/internal/iofs"
	"github.com/g3zod/CreateADIFTestFiles/internal/iologger"
	adiftest "github.com/g3zod/CreateADIFTestFiles/pkg"
	"github.com/g3zod/CreateADIFTestFiles/pkg/config"
	"github.com/gnames/gn"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envFile is read from the working directory when it exists.
const envFile = ".env"

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			adiftest.Version, adiftest.Build),
		Use:   "adiftest",
		Short: "adiftest creates and checks ADIF test QSO files",
		Long: `adiftest creates ADIF test files with QSOs that exercise the fields,
data types and enumerations of an ADIF specification.

It reads the specification export (all.xml), the DXCC entities with
their callsign templates (Entities.xml) and a record plan, and writes

  ADIF_<ijk>_test_QSOs_<yyyy_MM_dd>.adi
  ADIF_<ijk>_test_QSOs_<yyyy_MM_dd>.adx

Every file is checked before it is written.

Configuration precedence (highest to lowest):
  1. CLI flags (--spec, --output, etc.)
  2. Environment variables (ADIFTEST_*), also read from ./.env
  3. Config file (~/.config/adiftest/config.yaml)
  4. Built-in defaults

Examples:
  adiftest generate --spec 3.1.5/exports/xml/all.xml
  adiftest check QSO_DATE 20240229 CQZ 41`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "adiftest version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// -V is consistent with other gn projects
	rootCmd.Flags().BoolP("version", "V", false, "version for adiftest")

	rootCmd.AddCommand(getGenerateCmd())
	rootCmd.AddCommand(getCheckCmd())
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	if err = loadEnvFile(envFile); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Hardcoded defaults until the user's settings are known.
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsurePlanFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))
	return nil
}

// loadEnvFile adds variables from a .env file to the environment.
// Variables that are already set win. A missing file is not an error.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return iofs.ReadFileError(path, err)
}

// reconfigureLogging reinitializes the logger with the loaded
// configuration, appending to the file started by bootstrap.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	_ = iologger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Only the fields of config.ToOptions() can be set from the
	// environment.
	v.SetEnvPrefix("ADIFTEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Generate configuration
	v.BindEnv("generate.spec_path", "ADIFTEST_GENERATE_SPEC_PATH")
	v.BindEnv("generate.entities_path", "ADIFTEST_GENERATE_ENTITIES_PATH")
	v.BindEnv("generate.plan_path", "ADIFTEST_GENERATE_PLAN_PATH")
	v.BindEnv("generate.output_dir", "ADIFTEST_GENERATE_OUTPUT_DIR")
	v.BindEnv("generate.styles", "ADIFTEST_GENERATE_STYLES")
	v.BindEnv("generate.program_id", "ADIFTEST_GENERATE_PROGRAM_ID")
	v.BindEnv("generate.seed", "ADIFTEST_GENERATE_SEED")

	// Log configuration
	v.BindEnv("log.level", "ADIFTEST_LOG_LEVEL")
	v.BindEnv("log.format", "ADIFTEST_LOG_FORMAT")
	v.BindEnv("log.destination", "ADIFTEST_LOG_DESTINATION")
	v.BindEnv("log.max_size_mb", "ADIFTEST_LOG_MAX_SIZE_MB")
	v.BindEnv("log.max_backups", "ADIFTEST_LOG_MAX_BACKUPS")
	v.BindEnv("log.max_age_days", "ADIFTEST_LOG_MAX_AGE_DAYS")
	v.BindEnv("log.compress", "ADIFTEST_LOG_COMPRESS")

	// General configuration
	v.BindEnv("jobs_number", "ADIFTEST_JOBS_NUMBER")

	v.AutomaticEnv()
}
