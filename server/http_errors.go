package server

import "net/http"

type httpError struct {
	statusCode int    // HTTP status code.
	err        error  // Reason for the HTTP error, logged only.
	message    string // Client facing message, defaults to the status text.
	upstream   bool   // Whether the body reports the upstream status code.
}

func (err *httpError) Error() string {
	if err.err != nil {
		return err.err.Error()
	}
	if err.message != "" {
		return err.message
	}
	return http.StatusText(err.statusCode)
}

func (err *httpError) Unwrap() error { return err.err }

func (err *httpError) httpStatusCode() int { return err.statusCode }

// errorBody is the JSON body of an error response
type errorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

func (err *httpError) body() *errorBody {
	ret := &errorBody{Error: err.message}
	if ret.Error == "" {
		ret.Error = http.StatusText(err.statusCode)
	}
	if err.upstream {
		ret.Status = err.statusCode
	}
	return ret
}

// errorHTTPStatusCode returns the HTTP error code that most closely describes err.
func errorHTTPStatusCode(err error) int {
	type httpStatusCoder interface {
		httpStatusCode() int
	}
	if err, ok := err.(httpStatusCoder); ok {
		return err.httpStatusCode()
	}
	return http.StatusInternalServerError
}
