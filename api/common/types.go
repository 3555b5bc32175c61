package common

import (
	"net/http"

	"github.com/govindrajkumar/easy-lease-sub000/app"
)

// HandlerFuncWithCTX - type is an adapter to use handlerfunc with ctx
type HandlerFuncWithCTX func(*app.Context, http.ResponseWriter, *http.Request) error

// StatusCodeRecorder remembers the status written to the response
type StatusCodeRecorder struct {
	http.ResponseWriter
	StatusCode int
}

func (r *StatusCodeRecorder) WriteHeader(statusCode int) {
	r.StatusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// ErrorResponse - error envelope returned to callable clients
type ErrorResponse struct {
	Error interface{} `json:"error"`
}
