package ioentities

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/g3zod/CreateADIFTestFiles/pkg/errcode"
	"github.com/gnames/gn"
)

func EntitiesParseError(path string, err error) error {
	msg := "Cannot parse the entities document <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EntitiesParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse %s: %w", fn, path, err),
	}
}

func EntitiesEmptyError(path string) error {
	msg := "The entities document <em>%s</em> has no dxccEntity elements"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EntitiesParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn, errors.New("no entities")),
	}
}

func EntitiesBuildError(path string, err error) error {
	msg := "The entities document <em>%s</em> is not usable: %s"
	vars := []any{path, err.Error()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EntitiesBuildError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot index entities: %w", fn, err),
	}
}
