// Package iofs creates the application directories, copies embedded
// templates on first run and reads or writes the files adiftest works
// with.
package iofs

import (
	"os"
	"path/filepath"

	"github.com/g3zod/CreateADIFTestFiles/pkg/config"
	"github.com/g3zod/CreateADIFTestFiles/pkg/templates"
)

// EnsureDirs creates the config and log directories under homeDir.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded config.yaml unless the file
// exists already.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), templates.ConfigYAML)
}

// EnsurePlanFile writes the embedded default plan unless the file exists
// already.
func EnsurePlanFile(homeDir string) error {
	return ensureFile(config.PlanFilePath(homeDir), templates.PlanYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}
	return nil
}

// ReadFile reads an input file.
func ReadFile(path string) ([]byte, error) {
	res, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	return res, nil
}

// WriteFile writes data to a temporary file in the target directory and
// renames it to path, so readers never see a partial file.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := touchDir(dir); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return WriteFileError(path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err = f.Write(data); err != nil {
		f.Close()
		return WriteFileError(path, err)
	}
	if err = f.Close(); err != nil {
		return WriteFileError(path, err)
	}
	if err = os.Chmod(tmp, 0644); err != nil {
		return WriteFileError(path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return WriteFileError(path, err)
	}
	return nil
}
