package deliverer

import (
	"context"
	"net/http"
	"time"
)

// Deliverer transmits a webhook once. It never retries internally; retry
// policy lives in the service layer.
type Deliverer interface {
	Deliver(ctx context.Context, req *Request) *Response
}

// Request is HTTP request
type Request struct {
	URL     string
	Method  string
	Payload []byte
	Headers map[string]string
	Timeout time.Duration
}

// Response is HTTP response. A transport failure is carried in Error; it is
// data for the caller, not an error to propagate.
type Response struct {
	StatusCode   int
	Header       http.Header
	ResponseBody []byte
	Error        error
	Latency      time.Duration
	Request      *Request
}

func (r *Response) Is2xx() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}
