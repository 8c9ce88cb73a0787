package iotesting

import (
	"embed"
	"os"
	"path/filepath"
	"testing"
)

// Names of the fixture input files.
const (
	SpecFile     = "all.xml"
	EntitiesFile = "Entities.xml"
	PlanFile     = "plan.yaml"
)

//go:embed testdata
var testdata embed.FS

// SpecXML returns the fixture specification export. It describes the same
// specification as Source.
func SpecXML() []byte {
	return mustRead(SpecFile)
}

// EntitiesXML returns the fixture entities document. It describes the
// same entities as Entities.
func EntitiesXML() []byte {
	return mustRead(EntitiesFile)
}

func mustRead(name string) []byte {
	res, err := testdata.ReadFile("testdata/" + name)
	if err != nil {
		panic(err)
	}
	return res
}

// WriteInputs copies the specification export and the entities document
// into dir and returns their paths.
func WriteInputs(t testing.TB, dir string) (specPath, entitiesPath string) {
	t.Helper()
	specPath = filepath.Join(dir, SpecFile)
	entitiesPath = filepath.Join(dir, EntitiesFile)
	WriteFile(t, specPath, SpecXML())
	WriteFile(t, entitiesPath, EntitiesXML())
	return specPath, entitiesPath
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// SetupTempHome points HOME to a temporary directory, so config, logs and
// default inputs of the application go there. The original value is
// restored when the test finishes.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    home := iotesting.SetupTempHome(t)
//	    // ~/.config/adiftest is now home/.config/adiftest
//	}
func SetupTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}
