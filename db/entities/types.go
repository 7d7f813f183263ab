package entities

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/hooktrail/hooktrail/pkg/masking"
)

// WebhookRequest is the request content sent in a webhook, stored as JSONB.
// The body and header values are sensitive and must never appear in logs or
// error messages.
type WebhookRequest struct {
	Method  string          `json:"method"`
	URL     string          `json:"url"`
	Headers masking.Headers `json:"headers"`
	Body    masking.Secret  `json:"body"`
}

func (m *WebhookRequest) Scan(src interface{}) error {
	return json.Unmarshal(src.([]byte), m)
}

func (m WebhookRequest) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// WebhookResponse is the outcome received for a webhook sent. All fields are
// nil while the attempt is in flight. ErrorMessage is set on transport
// failures (timeout, connection refused); StatusCode on any HTTP response.
type WebhookResponse struct {
	StatusCode   *int            `json:"status_code"`
	Headers      masking.Headers `json:"headers"`
	Body         *masking.Secret `json:"body"`
	ErrorMessage *string         `json:"error_message"`
}

func (m *WebhookResponse) Scan(src interface{}) error {
	return json.Unmarshal(src.([]byte), m)
}

func (m WebhookResponse) Value() (driver.Value, error) {
	return json.Marshal(m)
}
