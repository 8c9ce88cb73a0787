package iocatalog

import (
	"fmt"
	"runtime"

	"github.com/g3zod/CreateADIFTestFiles/pkg/config"
	"github.com/g3zod/CreateADIFTestFiles/pkg/errcode"
	"github.com/gnames/gn"
)

func CatalogParseError(path string, err error) error {
	msg := "Cannot parse the specification export <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse %s: %w", fn, path, err),
	}
}

func CatalogRecordError(path, table string, record int, err error) error {
	msg := "Record %d of <em>%s</em> in <em>%s</em> has an invalid range"
	vars := []any{record, table, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogParseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s record %d: %w",
			fn, table, record, err),
	}
}

func CatalogVersionError(path, version string) error {
	msg := "ADIF version '%s' of <em>%s</em> is not in the i.j.k format"
	vars := []any{version, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogVersionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad ADIF version '%s'", fn, version),
	}
}

func CatalogTooOldError(path, version string) error {
	msg := "ADIF version %s of <em>%s</em> is older than the minimal " +
		"supported version %s"
	vars := []any{version, path, config.MinVersionADIF}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogVersionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: ADIF version %s is not supported",
			fn, version),
	}
}

func CatalogBuildError(path string, err error) error {
	msg := "The specification export <em>%s</em> is not usable: %s"
	vars := []any{path, err.Error()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogBuildError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot build catalog: %w", fn, err),
	}
}

func CatalogStatusError(path, status string) error {
	msg := "ADIF status '%s' of <em>%s</em> is not one of " +
		"'Draft', 'Proposed', or 'Released'"
	vars := []any{status, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogStatusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad ADIF status '%s'", fn, status),
	}
}
