package cmis

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a CMIS error. Each kind corresponds to one of the
// exceptions defined by the CMIS specification.
type ErrorKind string

const (
	KindInvalidArgument         ErrorKind = "invalidArgument"
	KindObjectNotFound          ErrorKind = "objectNotFound"
	KindNotSupported            ErrorKind = "notSupported"
	KindPermissionDenied        ErrorKind = "permissionDenied"
	KindRuntime                 ErrorKind = "runtime"
	KindConstraint              ErrorKind = "constraint"
	KindContentAlreadyExists    ErrorKind = "contentAlreadyExists"
	KindFilterNotValid          ErrorKind = "filterNotValid"
	KindNameConstraintViolation ErrorKind = "nameConstraintViolation"
	KindStorage                 ErrorKind = "storage"
	KindStreamNotSupported      ErrorKind = "streamNotSupported"
	KindUpdateConflict          ErrorKind = "updateConflict"
	KindVersioning              ErrorKind = "versioning"
	KindUnauthorized            ErrorKind = "unauthorized"
)

// Error is the only error type that crosses the service boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so errors.Is(err, &Error{Kind: k})
// works as a kind check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

func NewInvalidArgumentError(format string, args ...any) *Error {
	return newError(KindInvalidArgument, nil, format, args...)
}

func NewConstraintError(format string, args ...any) *Error {
	return newError(KindConstraint, nil, format, args...)
}

func NewObjectNotFoundError(format string, args ...any) *Error {
	return newError(KindObjectNotFound, nil, format, args...)
}

func NewNotSupportedError(format string, args ...any) *Error {
	return newError(KindNotSupported, nil, format, args...)
}

func NewPermissionDeniedError(format string, args ...any) *Error {
	return newError(KindPermissionDenied, nil, format, args...)
}

func NewUpdateConflictError(format string, args ...any) *Error {
	return newError(KindUpdateConflict, nil, format, args...)
}

func NewStorageError(cause error, format string, args ...any) *Error {
	return newError(KindStorage, cause, format, args...)
}

// NewRuntimeError creates a generic runtime error. cause may be nil.
func NewRuntimeError(message string, cause error) *Error {
	return &Error{Kind: KindRuntime, Message: message, Err: cause}
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr, true
	}
	return nil, false
}

// KindOf returns the kind of the CMIS error in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	if cerr, ok := AsError(err); ok {
		return cerr.Kind
	}
	return ""
}

func IsInvalidArgument(err error) bool { return KindOf(err) == KindInvalidArgument }
func IsConstraint(err error) bool      { return KindOf(err) == KindConstraint }
func IsObjectNotFound(err error) bool  { return KindOf(err) == KindObjectNotFound }
func IsNotSupported(err error) bool    { return KindOf(err) == KindNotSupported }
func IsRuntime(err error) bool         { return KindOf(err) == KindRuntime }
func IsUpdateConflict(err error) bool  { return KindOf(err) == KindUpdateConflict }
