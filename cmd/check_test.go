package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/g3zod/CreateADIFTestFiles/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCheckCmd_Flags verifies the flags of check.
func TestGetCheckCmd_Flags(t *testing.T) {
	cmd := getCheckCmd()
	assert.Equal(t, "check", cmd.Name())

	for _, name := range []string{"spec", "adx", "file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "--%s flag should exist", name)
	}
}

func TestCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("writes to the file system")
	}
	iotesting.SetupTempHome(t)
	dir := t.TempDir()
	t.Chdir(dir)
	specPath, _ := iotesting.WriteInputs(t, dir)

	adiPath := filepath.Join(dir, "bad.adi")
	iotesting.WriteFile(t, adiPath, []byte("<CALL:2>AB<CALL:2>CD<EOR>\r\n"))
	adxPath := filepath.Join(dir, "good.adx")
	iotesting.WriteFile(t, adxPath, []byte(
		"<ADX><RECORDS><RECORD><CQZ>5</CQZ></RECORD></RECORDS></ADX>"))

	tests := []struct {
		msg    string
		args   []string
		hasErr bool
		out    []string
	}{
		{
			msg:  "valid values",
			args: []string{"QSO_DATE", "20240229", "cqz", "40"},
			out:  []string{`OK   QSO_DATE "20240229"`, `OK   CQZ "40"`},
		},
		{
			msg:    "keeps checking after a failure",
			args:   []string{"CQZ", "41", "QSO_DATE", "20230229", "CALL", "G3ZOD"},
			hasErr: true,
			out:    []string{`FAIL CQZ "41"`, `FAIL QSO_DATE "20230229"`, `OK   CALL "G3ZOD"`},
		},
		{
			msg:    "intl value in ADI",
			args:   []string{"NAME_INTL", "Bób"},
			hasErr: true,
			out:    []string{`FAIL NAME_INTL`},
		},
		{
			msg:  "intl value in ADX",
			args: []string{"--adx", "NAME_INTL", "Bób"},
			out:  []string{`OK   NAME_INTL`},
		},
		{
			msg:    "files",
			args:   []string{"-f", adiPath, "-f", adxPath},
			hasErr: true,
			out: []string{
				"FAIL " + adiPath + ": 1 problems",
				"Line 1 Error: field CALL appears twice",
				"OK   " + adxPath,
			},
		},
		{
			msg:    "odd arguments",
			args:   []string{"CQZ"},
			hasErr: true,
		},
		{
			msg:    "no arguments",
			args:   []string{},
			hasErr: true,
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			buf := new(bytes.Buffer)
			cmd := getRootCmd()
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			args := append([]string{"check", "-s", specPath}, v.args...)
			cmd.SetArgs(args)

			err := cmd.Execute()
			if v.hasErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err, buf.String())
			}
			for _, o := range v.out {
				assert.Contains(t, buf.String(), o)
			}
		})
	}
}
