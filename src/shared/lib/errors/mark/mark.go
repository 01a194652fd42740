package mark

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
)

// Marks are sentinel values attached to errors so that callers can branch on
// the kind of failure without depending on the concrete error chain.
type Mark error

func NewMark(name string) Mark {
	return errors.New(name)
}

func Wrap(err error, m Mark, msg string) error {
	return markers.Mark(errors.Wrap(err, msg), m)
}

func Message(m Mark, msg string) error {
	return markers.Mark(errors.New(msg), m)
}

func Is(err error, m Mark) bool {
	return markers.Is(err, m)
}
