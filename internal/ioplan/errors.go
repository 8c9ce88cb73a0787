package ioplan

import (
	"fmt"

	"github.com/g3zod/CreateADIFTestFiles/pkg/errcode"
	"github.com/gnames/gn"
)

// PlanConfigError creates an error for when a plan cannot be read or
// decoded.
func PlanConfigError(path string, err error) error {
	msg := `Cannot load record plan

<em>Plan file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML or TOML format
  - Unknown keys

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate the syntax, the extension .toml selects TOML
  3. Compare with the default plan in ~/.config/adiftest/plan.yaml`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.PlanParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load plan: %w", err),
	}
}

// PlanInvalidError creates an error for a plan that was decoded but
// does not describe a usable sequence of records.
func PlanInvalidError(path string, err error) error {
	msg := `Record plan <em>%s</em> is invalid

%s`

	vars := []any{path, err.Error()}

	return &gn.Error{
		Code: errcode.PlanInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid plan: %w", err),
	}
}
