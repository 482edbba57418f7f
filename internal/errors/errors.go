package errors

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"fs-inspect-server/internal/models"
)

// JSON-RPC error codes (as per the JSON-RPC 2.0 specification).
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Application-specific error codes.
const (
	// CodeFileSystemError covers path-not-found, permission-denied,
	// invalid-path and generic I/O failures. The specific kind is carried
	// in the error data.
	CodeFileSystemError = -32001

	// CodeInvalidLineRange indicates the resolved start index exceeded
	// the resolved end index.
	CodeInvalidLineRange = -32002

	// CodeInvalidPattern indicates the search pattern failed to compile.
	CodeInvalidPattern = -32003

	// CodeFileTooLarge indicates the file exceeds the configured size limit.
	CodeFileTooLarge = -32004
)

// Kind classifies an inspection error.
type Kind string

const (
	KindPathNotFound     Kind = "path_not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindInvalidPath      Kind = "invalid_path"
	KindIO               Kind = "io_error"
	KindInvalidLineRange Kind = "invalid_line_range"
	KindInvalidPattern   Kind = "invalid_pattern"
	KindFileTooLarge     Kind = "file_too_large"
	KindInvalidParams    Kind = "invalid_params"
	KindInternal         Kind = "internal"
)

// Error is the typed error returned by every inspection operation.
type Error struct {
	Kind    Kind
	Path    string
	Message string

	// Start and End carry the original, unresolved range values for
	// KindInvalidLineRange diagnostics.
	Start int
	End   int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindPathNotFound:
		return fmt.Sprintf("path not found: %s", e.Path)
	case KindPermissionDenied:
		return fmt.Sprintf("permission denied: %s", e.Path)
	case KindInvalidLineRange:
		return fmt.Sprintf("invalid line range: %d to %d", e.Start, e.End)
	case KindInvalidPattern:
		return fmt.Sprintf("invalid pattern: %s", e.Message)
	default:
		if e.Path != "" && e.Message != "" {
			return fmt.Sprintf("%s: %s", e.Message, e.Path)
		}
		if e.Message != "" {
			return e.Message
		}
		if e.Err != nil {
			return e.Err.Error()
		}
		return string(e.Kind)
	}
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// NewPathNotFound reports a path that does not exist on the filesystem.
func NewPathNotFound(path string) *Error {
	return &Error{Kind: KindPathNotFound, Path: path}
}

// NewPermissionDenied reports an OS-level access denial.
func NewPermissionDenied(path string) *Error {
	return &Error{Kind: KindPermissionDenied, Path: path}
}

// NewInvalidPath reports a path that exists but is the wrong type for the
// requested mode, or a path that is malformed for this server.
func NewInvalidPath(path, message string) *Error {
	return &Error{Kind: KindInvalidPath, Path: path, Message: message}
}

// NewIOError wraps an underlying read or traversal failure.
func NewIOError(path string, err error) *Error {
	return &Error{Kind: KindIO, Path: path, Message: "io error", Err: err}
}

// NewInvalidLineRange reports a resolved begin index greater than the
// resolved end index. start and end are the original request values.
func NewInvalidLineRange(start, end int) *Error {
	return &Error{Kind: KindInvalidLineRange, Start: start, End: end}
}

// NewInvalidPattern reports a pattern that failed to compile. message is the
// compiler's diagnostic.
func NewInvalidPattern(message string) *Error {
	return &Error{Kind: KindInvalidPattern, Message: message}
}

// NewFileTooLarge reports a file exceeding the configured size limit.
func NewFileTooLarge(path string, size int64, maxMB int) *Error {
	return &Error{
		Kind:    KindFileTooLarge,
		Path:    path,
		Message: fmt.Sprintf("file is %d bytes, limit is %d MB", size, maxMB),
	}
}

// NewInvalidParams reports a malformed or incomplete request.
func NewInvalidParams(message string) *Error {
	return &Error{Kind: KindInvalidParams, Message: message}
}

// NewInternal reports an unexpected server-side failure.
func NewInternal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// FromOSError classifies an error returned by the os package against a path.
// Not-exist and permission conditions get their specific kinds; everything
// else is an I/O error.
func FromOSError(path string, err error) *Error {
	if stdErrors.Is(err, fs.ErrNotExist) {
		return NewPathNotFound(path)
	}
	if stdErrors.Is(err, fs.ErrPermission) {
		return NewPermissionDenied(path)
	}
	return NewIOError(path, err)
}

// code maps a Kind to its wire error code.
func (e *Error) code() int {
	switch e.Kind {
	case KindPathNotFound, KindPermissionDenied, KindInvalidPath, KindIO:
		return CodeFileSystemError
	case KindInvalidLineRange:
		return CodeInvalidLineRange
	case KindInvalidPattern:
		return CodeInvalidPattern
	case KindFileTooLarge:
		return CodeFileTooLarge
	case KindInvalidParams:
		return CodeInvalidParams
	default:
		return CodeInternalError
	}
}

// ToErrorDetail converts an Error into the wire-level ErrorDetail.
func ToErrorDetail(e *Error) *models.ErrorDetail {
	if e == nil {
		return nil
	}
	data := map[string]interface{}{"kind": string(e.Kind)}
	if e.Path != "" {
		data["path"] = e.Path
	}
	if e.Kind == KindInvalidLineRange {
		data["start_line"] = e.Start
		data["end_line"] = e.End
	}
	if e.Err != nil {
		data["details"] = e.Err.Error()
	} else if e.Message != "" {
		data["details"] = e.Message
	}
	return &models.ErrorDetail{
		Code:    e.code(),
		Message: e.Error(),
		Data:    data,
	}
}

// NewParseErrorDetail creates an ErrorDetail for JSON parsing failures.
func NewParseErrorDetail(details string) *models.ErrorDetail {
	return &models.ErrorDetail{
		Code:    CodeParseError,
		Message: "Parse error",
		Data:    map[string]interface{}{"details": details},
	}
}

// NewInvalidRequestDetail creates an ErrorDetail for invalid JSON-RPC
// request objects.
func NewInvalidRequestDetail(details string) *models.ErrorDetail {
	return &models.ErrorDetail{
		Code:    CodeInvalidRequest,
		Message: "Invalid Request",
		Data:    map[string]interface{}{"details": details},
	}
}

// NewMethodNotFoundDetail creates an ErrorDetail for an unknown method name.
func NewMethodNotFoundDetail(method string) *models.ErrorDetail {
	return &models.ErrorDetail{
		Code:    CodeMethodNotFound,
		Message: "Method not found",
		Data:    map[string]interface{}{"method": method},
	}
}

// ToJSONRPCError converts an ErrorDetail to a JSON-RPC error object,
// lifting known fields out of the detail's data map.
func ToJSONRPCError(detail *models.ErrorDetail) *models.JSONRPCError {
	if detail == nil {
		return nil
	}
	rpcErr := &models.JSONRPCError{
		Code:    detail.Code,
		Message: detail.Message,
	}
	if detail.Data == nil {
		return rpcErr
	}
	data := &models.JSONRPCErrorData{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if m, ok := detail.Data.(map[string]interface{}); ok {
		if v, ok := m["path"].(string); ok {
			data.Path = v
		}
		if v, ok := m["kind"].(string); ok {
			data.Kind = v
		}
		if v, ok := m["details"].(string); ok {
			data.Details = v
		}
	} else {
		data.Details = fmt.Sprintf("%v", detail.Data)
	}
	rpcErr.Data = data
	return rpcErr
}

// MapErrorToHTTPStatus maps a wire error code (plus the kind carried in the
// detail's data, for the overloaded filesystem code) to an HTTP status.
func MapErrorToHTTPStatus(detail *models.ErrorDetail) int {
	if detail == nil {
		return http.StatusInternalServerError
	}
	switch detail.Code {
	case CodeParseError, CodeInvalidRequest, CodeInvalidParams,
		CodeInvalidLineRange, CodeInvalidPattern:
		return http.StatusBadRequest
	case CodeMethodNotFound:
		return http.StatusNotFound
	case CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeFileSystemError:
		if m, ok := detail.Data.(map[string]interface{}); ok {
			switch Kind(fmt.Sprintf("%v", m["kind"])) {
			case KindPathNotFound:
				return http.StatusNotFound
			case KindPermissionDenied:
				return http.StatusForbidden
			case KindInvalidPath:
				return http.StatusBadRequest
			}
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
