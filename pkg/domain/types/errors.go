package types

type Error struct {
	msg   string
	cause error
}

func (x Error) Error() string {
	msg := x.msg
	if x.cause != nil {
		msg += ": " + x.cause.Error()
	}
	return msg
}
func (x Error) Wrap(cause error) Error {
	return Error{msg: x.msg, cause: cause}
}
func (x Error) Unwrap() error { return x.cause }

// Is matches the error kind regardless of the wrapped cause.
func (x Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.msg == x.msg
}

var (
	ErrInvalidConfig  = Error{msg: "invalid configuration"}
	ErrInvalidContext = Error{msg: "invalid trigger context"}
)

// RemoteError is returned when Slack explicitly rejected a request.
type RemoteError struct {
	Code       string
	StatusCode int
}

func (x *RemoteError) Error() string {
	return "Error from Slack: " + x.Code
}
