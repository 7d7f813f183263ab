package deliverer

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hooktrail/hooktrail/config"
	"github.com/hooktrail/hooktrail/constants"
)

// HTTPDeliverer sends webhooks over HTTP. One Deliver call is one attempt;
// requests without an explicit timeout fall back to the configured default.
type HTTPDeliverer struct {
	timeout time.Duration
	client  *http.Client
}

func NewHTTPDeliverer(cfg *config.DelivererConfig) *HTTPDeliverer {
	return &HTTPDeliverer{
		timeout: time.Duration(cfg.Timeout) * time.Millisecond,
		client:  &http.Client{},
	}
}

func (d *HTTPDeliverer) Deliver(ctx context.Context, req *Request) *Response {
	res := &Response{Request: req}

	timeout := req.Timeout
	if timeout == 0 {
		timeout = d.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Payload))
	if err != nil {
		res.Error = err
		return res
	}
	for name, value := range constants.DefaultDelivererRequestHeaders {
		request.Header.Set(name, value)
	}
	for name, value := range req.Headers {
		request.Header.Set(name, value)
	}

	start := time.Now()
	response, err := d.client.Do(request)
	if err != nil {
		res.Error = err
		res.Latency = time.Since(start)
		return res
	}
	defer response.Body.Close()

	res.StatusCode = response.StatusCode
	res.Header = response.Header

	body, err := io.ReadAll(response.Body)
	res.Latency = time.Since(start)
	if err != nil {
		res.Error = err
		return res
	}
	res.ResponseBody = body
	return res
}
