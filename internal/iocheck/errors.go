package iocheck

import (
	"fmt"

	"github.com/g3zod/CreateADIFTestFiles/pkg/errcode"
	"github.com/gnames/gn"
)

// ADXError creates an error for an ADX document that failed the checks.
func ADXError(name string, diags []Diagnostic) error {
	msg := `The ADX file <em>%s</em> was not written, %d problems found:

%s`
	vars := []any{name, len(diags), Format(diags)}
	return &gn.Error{
		Code: errcode.CheckADXError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("ADX check of %s failed: %s", name, Format(diags)),
	}
}

// ADIError creates an error for an ADI file that failed the checks.
func ADIError(name string, diags []Diagnostic) error {
	msg := `The ADI file <em>%s</em> was not written, %d problems found:

%s`
	vars := []any{name, len(diags), Format(diags)}
	return &gn.Error{
		Code: errcode.CheckADIError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("ADI check of %s failed: %s", name, Format(diags)),
	}
}
