package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-playground/form"
	"github.com/hooktrail/hooktrail/db/entities"
	"github.com/hooktrail/hooktrail/filter"
	"github.com/hooktrail/hooktrail/pkg/contextx"
	"github.com/hooktrail/hooktrail/pkg/masking"
	"github.com/hooktrail/hooktrail/pkg/types"
	"github.com/hooktrail/hooktrail/service"
	"github.com/hooktrail/hooktrail/utils"
)

var queryDecoder = form.NewDecoder()

// ListEventsRequest is the query string of GET /events. Timestamps are unix
// milliseconds. A non-empty object_id takes precedence over every other
// filter field.
type ListEventsRequest struct {
	CreatedAfter  *int64   `form:"created_after"`
	CreatedBefore *int64   `form:"created_before"`
	Limit         *uint16  `form:"limit"`
	Offset        *uint16  `form:"offset"`
	ObjectId      *string  `form:"object_id"`
	ProfileId     *string  `form:"profile_id"`
	EventClasses  []string `form:"event_classes" validate:"omitempty,dive,oneof=payments refunds disputes mandates"`
	EventTypes    []string `form:"event_types" validate:"omitempty,dive,oneof=payment_succeeded payment_failed payment_processing action_required refund_succeeded refund_failed dispute_opened dispute_won dispute_lost mandate_active mandate_revoked"`
	IsDelivered   *bool    `form:"is_delivered"`
}

func (r *ListEventsRequest) Constraints() filter.Constraints {
	c := filter.Constraints{
		Limit:        r.Limit,
		Offset:       r.Offset,
		ObjectId:     r.ObjectId,
		ProfileId:    r.ProfileId,
		EventClasses: r.EventClasses,
		EventTypes:   r.EventTypes,
		IsDelivered:  r.IsDelivered,
	}
	if r.CreatedAfter != nil {
		c.CreatedAfter = utils.Pointer(time.UnixMilli(*r.CreatedAfter))
	}
	if r.CreatedBefore != nil {
		c.CreatedBefore = utils.Pointer(time.UnixMilli(*r.CreatedBefore))
	}
	return c
}

func (api *API) ListEvents(w http.ResponseWriter, r *http.Request) {
	var req ListEventsRequest
	if err := queryDecoder.Decode(&req, r.URL.Query()); err != nil {
		api.error(400, w, err)
		return
	}
	if err := utils.Validate(&req); err != nil {
		api.error(400, w, err)
		return
	}

	merchantId := contextx.GetMerchantID(r.Context())
	list, total, err := api.service.ListEvents(r.Context(), merchantId, req.Constraints())
	api.assert(err)

	api.json(200, w, NewPagination(total, list))
}

func (api *API) GetEvent(w http.ResponseWriter, r *http.Request) {
	merchantId := contextx.GetMerchantID(r.Context())
	detail, err := api.service.GetEvent(r.Context(), merchantId, api.param(r, "id"))
	if err != nil {
		api.serviceError(w, err)
		return
	}

	api.json(200, w, detail)
}

func (api *API) ListAttempts(w http.ResponseWriter, r *http.Request) {
	merchantId := contextx.GetMerchantID(r.Context())
	chain, err := api.service.ListAttempts(r.Context(), merchantId, api.param(r, "id"))
	if err != nil {
		api.serviceError(w, err)
		return
	}

	api.json(200, w, NewPagination(int64(len(chain)), chain))
}

// CreateEventRequest is the body of POST /events. Payload and header values
// are treated as sensitive and never appear in logs or error messages.
type CreateEventRequest struct {
	ProfileId  string            `json:"profile_id" validate:"required"`
	ObjectId   string            `json:"object_id" validate:"required"`
	EventType  string            `json:"event_type" validate:"required,oneof=payment_succeeded payment_failed payment_processing action_required refund_succeeded refund_failed dispute_opened dispute_won dispute_lost mandate_active mandate_revoked"`
	EventClass string            `json:"event_class" validate:"required,oneof=payments refunds disputes mandates"`
	URL        string            `json:"url" validate:"required,url"`
	Method     string            `json:"method" validate:"omitempty,oneof=POST PUT PATCH"`
	Headers    map[string]string `json:"headers"`
	Payload    string            `json:"payload" validate:"required"`
}

func (r *CreateEventRequest) Event() *entities.Event {
	return &entities.Event{
		ProfileId:  r.ProfileId,
		ObjectId:   r.ObjectId,
		EventType:  r.EventType,
		EventClass: r.EventClass,
		Request: &entities.WebhookRequest{
			Method:  utils.DefaultIfZero(r.Method, http.MethodPost),
			URL:     r.URL,
			Headers: requestHeaders(r.Headers),
			Body:    masking.NewSecret(r.Payload),
		},
	}
}

func requestHeaders(m map[string]string) masking.Headers {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	headers := make(masking.Headers, 0, len(names))
	for _, name := range names {
		headers = append(headers, masking.Header{
			Name:  name,
			Value: masking.NewSecret(m[name]),
		})
	}
	return headers
}

func (api *API) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.error(400, w, errors.New("malformed request body"))
		return
	}
	if err := utils.Validate(&req); err != nil {
		api.error(400, w, err)
		return
	}

	event := req.Event()
	event.MerchantId = contextx.GetMerchantID(r.Context())
	event, err := api.service.IngestEvent(r.Context(), event)
	api.assert(err)

	api.json(201, w, event)
}

func (api *API) RetryEvent(w http.ResponseWriter, r *http.Request) {
	merchantId := contextx.GetMerchantID(r.Context())
	attempt, err := api.service.RetryEvent(r.Context(), merchantId, api.param(r, "id"))
	if err != nil {
		api.serviceError(w, err)
		return
	}

	api.json(200, w, attempt)
}

// serviceError maps domain errors onto status codes; anything unexpected
// escalates to the recovery middleware.
func (api *API) serviceError(w http.ResponseWriter, err error) {
	var stateErr *service.InvalidStateError
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		api.json(404, w, types.ErrorResponse{Message: MsgNotFound})
	case errors.As(err, &stateErr):
		api.json(409, w, types.ErrorResponse{Message: err.Error()})
	default:
		api.assert(err)
	}
}
