package errors

import "fmt"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NotFound(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: 404}
}

func Validation(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: 400}
}

// StorageUnavailable signals that the retry budget was exhausted on a
// transient storage fault. The wrapped cause is for server-side logs only,
// handlers must not leak it to users.
type StorageUnavailable struct {
	Err error
}

func (e *StorageUnavailable) Error() string {
	return fmt.Sprintf("storage unavailable: %s", e.Err)
}

func (e *StorageUnavailable) Unwrap() error {
	return e.Err
}
