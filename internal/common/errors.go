package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Stage error codes. Each pipeline failure carries exactly one of these so
// callers can tell which stage failed without parsing messages.
const (
	CodeInvalidRequest           = "INVALID_REQUEST"
	CodeNotFound                 = "NOT_FOUND"
	CodeAccessDenied             = "ACCESS_DENIED"
	CodeExtractionFailed         = "EXTRACTION_FAILED"
	CodeNoTextExtracted          = "NO_TEXT_EXTRACTED"
	CodeUpstreamService          = "UPSTREAM_SERVICE_ERROR"
	CodeMalformedInferenceOutput = "MALFORMED_INFERENCE_OUTPUT"
	CodeTimeout                  = "TIMEOUT"
	CodePersistence              = "PERSISTENCE_ERROR"
	CodeInternal                 = "INTERNAL"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// ErrInvalidInput marks configuration and request validation failures.
var ErrInvalidInput = errors.New("invalid input")

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Error constructors, one per stage failure.
func InvalidRequestError(message string) *AppError {
	return NewAppError(CodeInvalidRequest, message, nil)
}

func NotFoundError(message string, cause error) *AppError {
	return NewAppError(CodeNotFound, message, cause)
}

func AccessDeniedError(message string, cause error) *AppError {
	return NewAppError(CodeAccessDenied, message, cause)
}

func ExtractionFailedError(cause error) *AppError {
	return NewAppError(CodeExtractionFailed, "could not parse document", cause)
}

func NoTextExtractedError() *AppError {
	return NewAppError(CodeNoTextExtracted, "could not extract text from file", nil)
}

func UpstreamServiceError(status int, body string) *AppError {
	return NewAppError(CodeUpstreamService, fmt.Sprintf("inference endpoint returned %d: %s", status, body), nil)
}

func MalformedInferenceOutputError(cause error) *AppError {
	return NewAppError(CodeMalformedInferenceOutput, "inference output is not valid JSON for the resume schema", cause)
}

func TimeoutError(message string, cause error) *AppError {
	return NewAppError(CodeTimeout, message, cause)
}

func PersistenceError(cause error) *AppError {
	return NewAppError(CodePersistence, "failed to persist parsed resume", cause)
}

// AsAppError unwraps err to the first AppError in its chain.
func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// HTTPStatus maps a stage error code to the status the HTTP surface reports.
func HTTPStatus(err error) int {
	ae, ok := AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch ae.Code {
	case CodeInvalidRequest, CodeNoTextExtracted:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAccessDenied:
		return http.StatusForbidden
	case CodeExtractionFailed:
		return http.StatusUnprocessableEntity
	case CodeUpstreamService, CodeMalformedInferenceOutput:
		return http.StatusBadGateway
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
