package api

import (
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/marks"
)

type ErrorCode string

const (
	InvalidParameterCode ErrorCode = "invalid_parameter"
	UnseparableInputCode ErrorCode = "unseparable_input"
	ModelUnavailableCode ErrorCode = "model_unavailable"
	NotFoundCode         ErrorCode = "not_found"
	DefaultErrorCode     ErrorCode = "internal_error"
)

// Error pairs a stable error code and user safe message with the
// internal error that caused it.
type Error struct {
	ErrorCode     ErrorCode
	UserMessage   string
	InternalError error
}

func (e *Error) Error() string {
	return e.InternalError.Error()
}

func (e *Error) Unwrap() error {
	return e.InternalError
}

func WrapError(code ErrorCode, userMessage string, err error) *Error {
	return &Error{
		ErrorCode:     code,
		UserMessage:   userMessage,
		InternalError: err,
	}
}

// CommitError classifies an internal error into an API error by its
// mark. Unmarked errors become opaque internal errors.
func CommitError(err error) *Error {
	switch {
	case mark.Is(err, marks.InvalidParameter):
		return WrapError(InvalidParameterCode, "A request parameter is missing or invalid", err)

	case mark.Is(err, marks.UnseparableInput):
		return WrapError(UnseparableInputCode, "This audio cannot be separated into stems", err)

	case mark.Is(err, marks.ModelUnavailable):
		return WrapError(ModelUnavailableCode, "The stem model is currently unavailable", err)

	case mark.Is(err, marks.NotFound):
		return WrapError(NotFoundCode, "The requested resource could not be found", err)

	default:
		return WrapError(DefaultErrorCode, "Something went wrong, please try again later", err)
	}
}
