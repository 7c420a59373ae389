package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal        ErrorCode = "COMMON_001"
	ErrCodeInvalidParam    ErrorCode = "COMMON_002"
	ErrCodeNotFound        ErrorCode = "COMMON_003"
	ErrCodeTimeout         ErrorCode = "COMMON_004"
	ErrCodeSerialization   ErrorCode = "COMMON_005"
	ErrCodeDatabaseError   ErrorCode = "COMMON_006"
	ErrCodeCacheError      ErrorCode = "COMMON_007"
	ErrCodeExternalService ErrorCode = "COMMON_008"
	ErrCodeStorageError    ErrorCode = "COMMON_009"
	ErrCodeConfigInvalid   ErrorCode = "COMMON_010"
)

// Case-law module error codes.
const (
	ErrCodeCaseNotFound    ErrorCode = "CASE_001"
	ErrCodeMarkupMalformed ErrorCode = "CASE_002"
	ErrCodeCaseExists      ErrorCode = "CASE_003"
)

// Citation module error codes.
const (
	ErrCodeCourtUnresolvable    ErrorCode = "CIT_001"
	ErrCodeCitationShapeUnknown ErrorCode = "CIT_002"
	ErrCodeReporterUnknown      ErrorCode = "CIT_003"
)

// Patent module error codes.
const (
	ErrCodePatentNotFound        ErrorCode = "PAT_001"
	ErrCodePatentNumberInvalid   ErrorCode = "PAT_002"
	ErrCodePatentFetchFailed     ErrorCode = "PAT_003"
	ErrCodeClaimParseFailed      ErrorCode = "PAT_004"
	ErrCodeContinuityUnavailable ErrorCode = "PAT_005"
)

// Short aliases used throughout the codebase.
const (
	CodeOK      = ErrorCode("OK")
	CodeUnknown = ErrorCode("")

	CodeInternal          = ErrCodeInternal
	CodeInvalidParam      = ErrCodeInvalidParam
	CodeNotFound          = ErrCodeNotFound
	CodeDatabaseError     = ErrCodeDatabaseError
	CodeCacheError        = ErrCodeCacheError
	CodeExternalService   = ErrCodeExternalService
	CodeStorageError      = ErrCodeStorageError
	CodeCaseNotFound      = ErrCodeCaseNotFound
	CodeMarkupMalformed   = ErrCodeMarkupMalformed
	CodeCourtUnresolvable = ErrCodeCourtUnresolvable
	CodePatentNotFound    = ErrCodePatentNotFound
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:        "internal error",
	ErrCodeInvalidParam:    "invalid parameter",
	ErrCodeNotFound:        "resource not found",
	ErrCodeTimeout:         "operation timed out",
	ErrCodeSerialization:   "serialization failed",
	ErrCodeDatabaseError:   "database error",
	ErrCodeCacheError:      "cache error",
	ErrCodeExternalService: "external service error",
	ErrCodeStorageError:    "storage error",
	ErrCodeConfigInvalid:   "invalid configuration",

	ErrCodeCaseNotFound:    "case not found",
	ErrCodeMarkupMalformed: "malformed opinion markup",
	ErrCodeCaseExists:      "case already stored",

	ErrCodeCourtUnresolvable:    "court could not be resolved",
	ErrCodeCitationShapeUnknown: "citation shape outside known grammars",
	ErrCodeReporterUnknown:      "unknown reporter abbreviation",

	ErrCodePatentNotFound:        "patent not found",
	ErrCodePatentNumberInvalid:   "invalid patent number",
	ErrCodePatentFetchFailed:     "failed to fetch patent data",
	ErrCodeClaimParseFailed:      "failed to parse claim set",
	ErrCodeContinuityUnavailable: "continuity data not available",
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// ModuleForCode returns the module prefix of an ErrorCode ("COMMON", "CASE",
// "CIT", "PAT"). Used as a metric label by the monitoring layer.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
