package response

import "errors"

// Error is a sentinel error carrying the HTTP status it should surface
// with. Domain packages declare their sentinels once and services return
// them as-is; the handler funnel maps anything else to a 500.
type Error struct {
	Code int
	Err  error
}

func NewError(code int, msg string) error {
	return &Error{Code: code, Err: errors.New(msg)}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// Is matches two sentinels by status code and message, so wrapped copies
// of a domain error still compare equal under errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}
