package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that the requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrRunInProgress indicates that an ingestion run is already executing.
	ErrRunInProgress = errors.New("ingestion run already in progress")
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	TypeServer     Type = iota // Server-side errors (e.g., filesystem or network issues).
	TypeBusiness               // Business logic errors (e.g., domain rule violations).
	TypeValidation             // Validation errors (e.g., input validation failures).
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier for an error kind. Ingestion failures are
// reported by code in the log stream, and mapped to HTTP status codes at the edge.
type Code int

const (
	CodeInternal       Code = iota // Internal or unclassified error.
	CodeInvalidInput                // Invalid request input.
	CodeNotFound                    // Resource not found.
	CodeConflict                    // Conflicting state (e.g., a run already in progress).
	CodeSchemaMismatch              // Header sequence differs from the expected columns.
	CodeFileAccess                  // Source file missing, unreadable or not tabular.
	CodeUpload                      // Object store unreachable or rejected the transfer.
	CodeLedgerWrite                 // Ledger file could not be written.
)

func (c Code) String() string {
	switch c {
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeConflict:
		return "ERROR_CODE_CONFLICT"
	case CodeSchemaMismatch:
		return "ERROR_CODE_SCHEMA_MISMATCH"
	case CodeFileAccess:
		return "ERROR_CODE_FILE_ACCESS"
	case CodeUpload:
		return "ERROR_CODE_UPLOAD"
	case CodeLedgerWrite:
		return "ERROR_CODE_LEDGER_WRITE"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a message, a high-level
// type, and a stable error code.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error implements the error interface.
//
// When both a message and an underlying error are present they are joined as
// "msg: err" so the log line keeps both the context and the cause.
func (e *Error) Error() string {
	switch {
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.err != nil:
		return e.err.Error()
	case e.msg != "":
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Logical business not meet with requirement"
	case TypeServer:
		return "Internal error"
	}

	return "Unknown error"
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.msg,
		e.err,
	)
}

// Msg returns the error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUpload:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error with the provided error.
func NewServer(err error) error {
	return new(err, "", TypeServer, CodeInternal)
}

// NewBusiness creates a business-type error with the specified message and code.
func NewBusiness(msg string, code Code) error {
	return new(nil, msg, TypeBusiness, code)
}

// NewInvalidInput creates a validation error for invalid input.
func NewInvalidInput(err error) error {
	return new(err, "", TypeValidation, CodeInvalidInput)
}

// NewSchemaMismatch reports a header sequence that differs from the expected one.
func NewSchemaMismatch(msg string) error {
	return new(nil, msg, TypeValidation, CodeSchemaMismatch)
}

// NewFileAccess reports a source file that could not be opened or parsed.
func NewFileAccess(path string, err error) error {
	return new(err, "cannot read "+path, TypeServer, CodeFileAccess)
}

// NewUpload reports a failed transfer to the object store.
func NewUpload(location string, err error) error {
	return new(err, "upload to "+location+" failed", TypeServer, CodeUpload)
}

// NewLedgerWrite reports a failed append to the ingestion ledger.
func NewLedgerWrite(path string, err error) error {
	return new(err, "cannot write ledger "+path, TypeServer, CodeLedgerWrite)
}

// CodeOf returns the code carried by err, or CodeInternal when err is not
// (and does not wrap) an *Error.
func CodeOf(err error) Code {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.code == code
}
