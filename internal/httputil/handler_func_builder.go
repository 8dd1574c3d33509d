package httputil

import "net/http"

// HandlerFuncErr behaves like http.HandlerFunc but returns an error.
type HandlerFuncErr func(w http.ResponseWriter, r *http.Request) error

// Middleware wraps a HandlerFuncErr and returns a new one.
type Middleware func(next HandlerFuncErr) HandlerFuncErr

// ErrorHandler handles errors returned by handlers or middlewares.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// HandlerFuncBuilder creates an http.HandlerFunc from a handler and its
// middlewares, routing any returned error to a shared error handler.
type HandlerFuncBuilder func(handler HandlerFuncErr, middlewares ...Middleware) http.HandlerFunc

// CreateHandlerFuncBuilder returns a HandlerFuncBuilder bound to the given
// error handler. Middlewares are applied in reverse order so the first one
// listed is the outermost.
func CreateHandlerFuncBuilder(errorHandler ErrorHandler) HandlerFuncBuilder {
	return func(handler HandlerFuncErr, middlewares ...Middleware) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			final := handler
			for i := len(middlewares) - 1; i >= 0; i-- {
				final = middlewares[i](final)
			}
			if err := final(w, r); err != nil {
				errorHandler(w, r, err)
			}
		}
	}
}
