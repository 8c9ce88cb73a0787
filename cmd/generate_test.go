package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/g3zod/CreateADIFTestFiles/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetGenerateCmd_Flags verifies flags and their short forms.
func TestGetGenerateCmd_Flags(t *testing.T) {
	cmd := getGenerateCmd()
	assert.Equal(t, "generate", cmd.Use)
	assert.Contains(t, cmd.Aliases, "gen")
	assert.NotNil(t, cmd.RunE, "RunE should be set")

	tests := []struct {
		name, short, def string
	}{
		{"spec", "s", ""},
		{"entities", "e", ""},
		{"plan", "p", ""},
		{"output", "o", ""},
		{"styles", "", "[]"},
		{"seed", "", "0"},
		{"date", "d", ""},
		{"report", "r", ""},
		{"program-id", "", ""},
		{"jobs", "j", "0"},
		{"watch", "w", "false"},
	}
	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			f := cmd.Flags().Lookup(v.name)
			require.NotNil(t, f, "--%s flag should exist", v.name)
			assert.Equal(t, v.short, f.Shorthand)
			assert.Equal(t, v.def, f.DefValue)
		})
	}
}

// TestGenerate runs the generate command from the root command.
func TestGenerate(t *testing.T) {
	if testing.Short() {
		t.Skip("writes to the file system")
	}
	iotesting.SetupTempHome(t)
	dir := t.TempDir()
	t.Chdir(dir)
	specPath, entitiesPath := iotesting.WriteInputs(t, dir)
	planPath := filepath.Join(dir, "plan.toml")
	iotesting.WriteFile(t, planPath, []byte(`
report = "none"

[[records]]
repeat = 2
[[records.fields]]
name = "CALL"
value = "${CALL_FOR_DXCC(223)}"
`))
	out := filepath.Join(dir, "out")

	cmd := getRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{
		"generate",
		"-s", specPath,
		"-e", entitiesPath,
		"-p", planPath,
		"-o", out,
		"--styles", "adi",
		"--date", "2024-05-01",
		"--seed", "7",
	})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, uint64(7), cfg.Generate.Seed)
	data, err := os.ReadFile(
		filepath.Join(out, "ADIF_315_test_QSOs_2024_05_01.adi"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<CALL:")
	assert.NotContains(t, string(data), "Report")

	_, err = os.Stat(filepath.Join(out, "ADIF_315_test_QSOs_2024_05_01.adx"))
	assert.True(t, os.IsNotExist(err), "adx was not requested")
}

// TestGenerateError verifies a missing input fails the command.
func TestGenerateError(t *testing.T) {
	if testing.Short() {
		t.Skip("writes to the file system")
	}
	iotesting.SetupTempHome(t)
	t.Chdir(t.TempDir())

	cmd := getRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"generate", "-s", "/no/such/all.xml"})
	assert.Error(t, cmd.Execute())
}
