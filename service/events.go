package service

import (
	"context"
	"sort"
	"strings"

	"github.com/hooktrail/hooktrail/constants"
	"github.com/hooktrail/hooktrail/db/dao"
	"github.com/hooktrail/hooktrail/db/entities"
	"github.com/hooktrail/hooktrail/deliverer"
	"github.com/hooktrail/hooktrail/filter"
	"github.com/hooktrail/hooktrail/pkg/masking"
	"github.com/hooktrail/hooktrail/utils"
)

// ListEvents resolves the constraint set into a lookup strategy and applies
// it under the merchant scope. total reflects the count ignoring pagination.
func (s *Service) ListEvents(ctx context.Context, merchantId string, c filter.Constraints) ([]*entities.Event, int64, error) {
	resolved := filter.Resolve(c)
	return s.db.Events.ListByConstraints(ctx, merchantId, resolved)
}

// EventDetail is an event plus its request/response content and its 1-based
// position within its attempt chain.
type EventDetail struct {
	*entities.Event
	Request       *entities.WebhookRequest  `json:"request"`
	Response      *entities.WebhookResponse `json:"response"`
	AttemptNumber int                       `json:"attempt_number"`
}

func (s *Service) GetEvent(ctx context.Context, merchantId, id string) (*EventDetail, error) {
	event, err := s.db.Events.Get(ctx, merchantId, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	chain, err := s.db.Events.ListAttempts(ctx, merchantId, event.InitialAttemptId)
	if err != nil {
		return nil, err
	}
	number := 0
	for i, attempt := range chain {
		if attempt.ID == event.ID {
			number = i + 1
			break
		}
	}

	return &EventDetail{
		Event:         event,
		Request:       event.Request,
		Response:      event.Response,
		AttemptNumber: number,
	}, nil
}

// ListAttempts returns the delivery attempt chain the event belongs to,
// ascending by creation time. The first element's id equals the chain's
// initial attempt id.
func (s *Service) ListAttempts(ctx context.Context, merchantId, eventId string) ([]*entities.Event, error) {
	event, err := s.db.Events.Get(ctx, merchantId, eventId)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return s.db.Events.ListAttempts(ctx, merchantId, event.InitialAttemptId)
}

// IngestEvent records a fresh webhook as the initial attempt of a new chain
// and delivers it synchronously. A transport failure is recorded as a
// failed attempt and is not an error.
func (s *Service) IngestEvent(ctx context.Context, event *entities.Event) (*entities.Event, error) {
	event.ID = constants.EventIDPrefix + utils.KSUID()
	event.InitialAttemptId = event.ID
	event.DeliveryAttempt = entities.DeliveryAttemptInitial
	event.IsDeliverySuccessful = nil
	event.Response = nil

	if err := s.db.Events.Insert(ctx, event); err != nil {
		return nil, err
	}

	s.log.Infow("dispatching webhook",
		"event_id", event.ID,
		"event_type", event.EventType,
		"object_id", event.ObjectId,
	)

	if err := s.deliver(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// deliver performs the transport call and records the outcome exactly once.
func (s *Service) deliver(ctx context.Context, event *entities.Event) error {
	req := event.Request
	res := s.deliverer.Deliver(ctx, &deliverer.Request{
		URL:     req.URL,
		Method:  req.Method,
		Payload: []byte(req.Body.Expose()),
		Headers: req.Headers.Map(),
	})

	result := deliveryResult(res)
	if err := s.db.Events.UpdateDeliveryResult(ctx, event, result); err != nil {
		return err
	}

	event.Response = result.Response
	event.IsDeliverySuccessful = utils.Pointer(result.Successful)

	s.log.Infow("webhook delivery recorded",
		"event_id", event.ID,
		"status", event.DeliveryStatus(),
		"latency", res.Latency,
	)
	return nil
}

func deliveryResult(res *deliverer.Response) *dao.DeliveryResult {
	response := &entities.WebhookResponse{}
	if res.Error != nil {
		response.ErrorMessage = utils.Pointer(res.Error.Error())
		if res.StatusCode != 0 {
			response.StatusCode = utils.Pointer(res.StatusCode)
		}
	} else {
		response.StatusCode = utils.Pointer(res.StatusCode)
		body := masking.NewSecret(string(res.ResponseBody))
		response.Body = &body
		response.Headers = responseHeaders(res)
	}
	return &dao.DeliveryResult{
		Response:   response,
		Successful: res.Error == nil && res.Is2xx(),
	}
}

func responseHeaders(res *deliverer.Response) masking.Headers {
	names := make([]string, 0, len(res.Header))
	for name := range res.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	headers := make(masking.Headers, 0, len(names))
	for _, name := range names {
		headers = append(headers, masking.Header{
			Name:  strings.ToLower(name),
			Value: masking.NewSecret(strings.Join(res.Header.Values(name), ", ")),
		})
	}
	return headers
}
