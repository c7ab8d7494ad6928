// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Input errors
	CodeInputShape       Code = "INPUT_SHAPE"
	CodeInvalidLineValue Code = "INVALID_LINE_VALUE"
	CodeInvalidPattern   Code = "INVALID_PATTERN"
	CodeInvalidDate      Code = "INVALID_DATE"
	CodeInvalidHour      Code = "INVALID_HOUR"
	CodeInvalidMethod    Code = "INVALID_METHOD"
	CodeInvalidCategory  Code = "INVALID_CATEGORY"
	CodeInvalidTrigram   Code = "INVALID_TRIGRAM"
	CodeInvalidTrials    Code = "INVALID_TRIALS"
	CodeInvalidToss      Code = "INVALID_TOSS"
	CodeNotRandom        Code = "NOT_RANDOM"
	CodeUsage            Code = "USAGE"

	// Lookup errors
	CodeHexagramNotFound Code = "HEXAGRAM_NOT_FOUND"

	// Internal defects
	CodeLookupMiss     Code = "LOOKUP_MISS"
	CodeCatalogInvalid Code = "CATALOG_INVALID"

	// CodeCanceled means the caller's context ended before the work did.
	CodeCanceled Code = "CANCELED"
)

// Exit codes returned by the command line.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitNotFound = 3
)

// ExitCode maps domain codes to process exit codes.
func (c Code) ExitCode() int {
	switch c {
	// Usage - the caller sent bad input
	case CodeInputShape,
		CodeInvalidLineValue,
		CodeInvalidPattern,
		CodeInvalidDate,
		CodeInvalidHour,
		CodeInvalidMethod,
		CodeInvalidCategory,
		CodeInvalidTrigram,
		CodeInvalidTrials,
		CodeInvalidToss,
		CodeNotRandom,
		CodeUsage:
		return ExitUsage

	case CodeHexagramNotFound:
		return ExitNotFound

	default:
		return ExitInternal
	}
}

// UserError reports whether the code describes a caller mistake rather
// than a defect.
func (c Code) UserError() bool {
	return c.ExitCode() != ExitInternal
}
