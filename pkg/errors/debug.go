package errors

import (
	"errors"
	"fmt"
)

// upstreamError is implemented by pkg/platform.Error without importing it here.
type upstreamError interface {
	error
	HTTPStatus() int
	UpstreamMessage() string
	Endpoint() string
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus   int    `json:"upstream_status,omitempty"`
	UpstreamMessage  string `json:"upstream_message,omitempty"`
	UpstreamEndpoint string `json:"upstream_endpoint,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
		if up, ok := e.(upstreamError); ok && d.UpstreamStatus == 0 {
			d.UpstreamStatus = up.HTTPStatus()
			d.UpstreamMessage = up.UpstreamMessage()
			d.UpstreamEndpoint = up.Endpoint()
		}
	}

	return d
}
