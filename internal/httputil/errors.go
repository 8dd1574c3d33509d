package httputil

// JSONError pairs an HTTP status with a message that is safe to show the
// client, while the wrapped error keeps the detailed cause for logging.
type JSONError struct {
	error
	HTTPStatus  int
	SafeMessage string
}

// NewJSONError builds a JSONError. When safeMessage is omitted, responders
// fall back to the standard text for the status code.
func NewJSONError(status int, err error, safeMessage ...string) JSONError {
	msg := ""
	if len(safeMessage) > 0 {
		msg = safeMessage[0]
	}
	return JSONError{
		error:       err,
		HTTPStatus:  status,
		SafeMessage: msg,
	}
}
