package iogenerate

import (
	"context"
	"errors"
	"fmt"

	"github.com/g3zod/CreateADIFTestFiles/pkg/adif"
	"github.com/g3zod/CreateADIFTestFiles/pkg/errcode"
	"github.com/gnames/gn"
)

// StyleError creates an error for an output style other than adi or adx.
func StyleError(style string) error {
	msg := `Unknown output style <em>%s</em>

<em>How to fix:</em>
  Use <em>adi</em>, <em>adx</em> or both: --styles adi,adx`

	return &gn.Error{
		Code: errcode.GenerateConfigError,
		Msg:  msg,
		Vars: []any{style},
		Err:  fmt.Errorf("unknown output style %q", style),
	}
}

// DateError creates an error for a date that is not YYYY-MM-DD.
func DateError(date string, err error) error {
	msg := "Date <em>%s</em> is not in the YYYY-MM-DD format"

	return &gn.Error{
		Code: errcode.GenerateConfigError,
		Msg:  msg,
		Vars: []any{date},
		Err:  fmt.Errorf("cannot parse date %q: %w", date, err),
	}
}

// GenerateError converts a failure of the emitter pass into a user-facing
// error. The code follows the kind of the engine error. Cancellation has
// its own code.
func GenerateError(file string, err error) error {
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return &gn.Error{
			Code: errcode.GenerateCancelledError,
			Msg:  "Generation of <em>%s</em> was cancelled, nothing was written",
			Vars: []any{file},
			Err:  fmt.Errorf("generation of %s cancelled: %w", file, err),
		}
	}

	var ae *adif.Error
	if !errors.As(err, &ae) {
		return &gn.Error{
			Code: errcode.GenerateInternalError,
			Msg:  "Cannot generate <em>%s</em>: %s",
			Vars: []any{file, err},
			Err:  fmt.Errorf("cannot generate %s: %w", file, err),
		}
	}

	var code gn.ErrorCode
	var fix string
	switch ae.Kind {
	case adif.Validation:
		code = errcode.GenerateValidationError
		fix = "Correct the value in the record plan"
	case adif.Sequencing:
		code = errcode.GenerateSequencingError
		fix = "Check the order of fields and records in the record plan"
	case adif.Specification:
		code = errcode.GenerateSpecificationError
		fix = "Check the specification export and the entities file"
	default:
		code = errcode.GenerateInternalError
		fix = "Report the problem together with the record plan"
	}

	msg := `Cannot generate <em>%s</em>, nothing was written

<em>Error:</em> %s
<em>Field:</em> %s
<em>Value:</em> %s

<em>How to fix:</em>
  %s`

	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: []any{file, ae.Msg, orNone(ae.Field), orNone(ae.Value), fix},
		Err:  fmt.Errorf("cannot generate %s: %w", file, err),
	}
}

func orNone(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
