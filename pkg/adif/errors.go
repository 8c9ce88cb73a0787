package adif

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of the generation engine.
type ErrorKind int

const (
	// Validation means a value violates its data type, range or enumeration.
	Validation ErrorKind = iota + 1
	// Sequencing means an operation arrived in the wrong state or repeats
	// a field inside one header or record.
	Sequencing
	// Specification means the specification export or the entities
	// reference is malformed or unsupported.
	Specification
	// Internal means an invariant of the engine itself was broken.
	Internal
)

func (k ErrorKind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Sequencing:
		return "sequencing"
	case Specification:
		return "specification"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the error value returned by every operation of the engine.
// Field, DataType and Value are filled when they are known.
type Error struct {
	Kind     ErrorKind
	Field    string
	DataType string
	Value    string
	Msg      string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s error in field %s: %s", e.Kind, e.Field, e.Msg)
}

// ValidationError creates an error for a value rejected by a data type,
// a range or an enumeration.
func ValidationError(
	field, dataType, value string,
	format string,
	args ...any,
) *Error {
	return &Error{
		Kind:     Validation,
		Field:    field,
		DataType: dataType,
		Value:    value,
		Msg:      fmt.Sprintf(format, args...),
	}
}

// SequencingError creates an error for a call that is not allowed in the
// current emitter state or for a malformed request from the caller.
func SequencingError(field, value, format string, args ...any) *Error {
	return &Error{
		Kind:  Sequencing,
		Field: field,
		Value: value,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// SpecificationError creates an error for bad reference data.
func SpecificationError(format string, args ...any) *Error {
	return &Error{
		Kind: Specification,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// InternalError creates an error for a broken invariant.
func InternalError(format string, args ...any) *Error {
	return &Error{
		Kind: Internal,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// KindOf returns the kind of an engine error found in the chain of err,
// or 0 if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsValidation reports whether err carries a validation failure.
func IsValidation(err error) bool {
	return KindOf(err) == Validation
}

// IsSequencing reports whether err carries a sequencing failure.
func IsSequencing(err error) bool {
	return KindOf(err) == Sequencing
}

// IsSpecification reports whether err carries a specification failure.
func IsSpecification(err error) bool {
	return KindOf(err) == Specification
}
