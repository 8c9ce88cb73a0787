package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Specification export errors
	CatalogParseError
	CatalogVersionError
	CatalogStatusError
	CatalogBuildError

	// Entities errors
	EntitiesParseError
	EntitiesBuildError

	// Plan errors
	PlanParseError
	PlanInvalidError

	// Generation errors
	GenerateConfigError
	GenerateValidationError
	GenerateSequencingError
	GenerateSpecificationError
	GenerateInternalError
	GenerateCancelledError

	// Output check errors
	CheckADXError
	CheckADIError

	// Watch errors
	WatchError
)
