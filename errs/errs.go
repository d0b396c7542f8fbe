// Package errs provides the coded errors shared by the codec, the fixers and the
// container.  Callers test with errors.Is against the sentinels below; matching is by
// code, so a wrapped error carrying field and offset details still matches.
package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Cursor errors
	CodeUnexpectedEndOfData Code = "UNEXPECTED_END_OF_DATA"
	CodeBufferOverrun       Code = "BUFFER_OVERRUN"

	// Codec errors
	CodeSlotOverrun        Code = "SLOT_OVERRUN"
	CodeUnsupportedVersion Code = "UNSUPPORTED_VERSION"

	// Fixer errors
	CodeFixPreconditionUnmet Code = "FIX_PRECONDITION_UNMET"
	CodeInvalidArgument      Code = "INVALID_ARGUMENT"

	// Container errors
	CodeBadContainer     Code = "BAD_CONTAINER"
	CodeChecksumMismatch Code = "CHECKSUM_MISMATCH"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable message
	Metadata map[string]string // field, offset, version...
	Cause    error             // Wrapped underlying error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Metadata) > 0 {
		keys := make([]string, 0, len(e.Metadata))
		for k := range e.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%s", k, e.Metadata[k])
		}
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels.  Compare with errors.Is, never with ==.
var (
	ErrUnexpectedEndOfData  = &Error{Code: CodeUnexpectedEndOfData, Message: "unexpected end of data"}
	ErrBufferOverrun        = &Error{Code: CodeBufferOverrun, Message: "buffer overrun"}
	ErrSlotOverrun          = &Error{Code: CodeSlotOverrun, Message: "slot overrun"}
	ErrUnsupportedVersion   = &Error{Code: CodeUnsupportedVersion, Message: "unsupported version"}
	ErrFixPreconditionUnmet = &Error{Code: CodeFixPreconditionUnmet, Message: "fix precondition unmet"}
	ErrInvalidArgument      = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrBadContainer         = &Error{Code: CodeBadContainer, Message: "bad container"}
	ErrChecksumMismatch     = &Error{Code: CodeChecksumMismatch, Message: "checksum mismatch"}
)

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf is New with formatting.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithMetadata creates a domain error with metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// WrapWithMetadata creates a domain error with both metadata and a cause.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
