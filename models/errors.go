package models

// Domain errors. Handlers map them to envelope codes through
// helper.HTTPHelper.GetStatusCode.

type ErrorUnauthorized struct{ Message string }

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorPermissionDenied struct{ Message string }

func (e ErrorPermissionDenied) Error() string { return e.Message }

type ErrorNotFound struct{ Message string }

func (e ErrorNotFound) Error() string { return e.Message }

type ErrorInvalidOperation struct {
	Message string
	Fields  map[string][]string
}

func (e ErrorInvalidOperation) Error() string { return e.Message }

type ErrorConflict struct{ Message string }

func (e ErrorConflict) Error() string { return e.Message }

type ErrorInternalServer struct {
	Message string
	Err     error
}

func (e ErrorInternalServer) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e ErrorInternalServer) Unwrap() error { return e.Err }

const (
	MsgInvalidCredentials = "Invalid authentication credentials"
	MsgNotFoundOrDenied   = "does not exist or access denied"
	MsgPermissionDenied   = "permission denied"
)

func Unauthorized() error { return ErrorUnauthorized{Message: MsgInvalidCredentials} }

func PermissionDenied(msg string) error {
	if msg == "" {
		msg = MsgPermissionDenied
	}
	return ErrorPermissionDenied{Message: msg}
}

// NotFound is used both for absent rows and rows the caller may not touch.
func NotFound(what string) error {
	return ErrorNotFound{Message: what + " " + MsgNotFoundOrDenied}
}

func InvalidOperation(msg string) error { return ErrorInvalidOperation{Message: msg} }

func Conflict(msg string) error { return ErrorConflict{Message: msg} }

func Internal(msg string, err error) error { return ErrorInternalServer{Message: msg, Err: err} }
