// Package ioplan reads record plans from YAML or TOML files.
package ioplan

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/g3zod/CreateADIFTestFiles/internal/iofs"
	"github.com/g3zod/CreateADIFTestFiles/pkg/config"
	"github.com/g3zod/CreateADIFTestFiles/pkg/plan"
	"github.com/g3zod/CreateADIFTestFiles/pkg/templates"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type ioplan struct {
	cfg *config.Config
}

// New creates a plan.Loader that reads the plan configured in cfg.
func New(cfg *config.Config) plan.Loader {
	res := ioplan{cfg: cfg}
	return &res
}

// Load reads, validates and returns the plan. Validation warnings are
// logged and kept in the plan.
func (l *ioplan) Load() (*plan.Plan, error) {
	path := l.cfg.PlanPath()
	data, err := iofs.ReadFile(path)
	if err != nil {
		return nil, PlanConfigError(path, err)
	}
	return Parse(path, data)
}

// Default returns the embedded default plan.
func Default() (*plan.Plan, error) {
	return Parse("plan.yaml", []byte(templates.PlanYAML))
}

// Parse decodes and validates a plan. Files with the .toml extension are
// read as TOML, everything else as YAML. Unknown keys are errors.
func Parse(path string, data []byte) (*plan.Plan, error) {
	var res plan.Plan
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = decodeTOML(data, &res)
	} else {
		err = decodeYAML(data, &res)
	}
	if err != nil {
		return nil, PlanConfigError(path, err)
	}

	if err = res.Validate(); err != nil {
		return nil, PlanInvalidError(path, err)
	}
	for _, w := range res.Warnings {
		slog.Warn("Plan warning",
			"path", path,
			"record", w.Record,
			"field", w.Field,
			"message", w.Message,
			"suggestion", w.Suggestion,
		)
	}
	return &res, nil
}

func decodeYAML(data []byte, p *plan.Plan) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(p)
	if errors.Is(err, io.EOF) {
		return errors.New("plan file is empty")
	}
	return err
}

func decodeTOML(data []byte, p *plan.Plan) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(p)
}
