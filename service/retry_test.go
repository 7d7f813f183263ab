package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/hooktrail/hooktrail/constants"
	"github.com/hooktrail/hooktrail/db"
	"github.com/hooktrail/hooktrail/db/dao"
	"github.com/hooktrail/hooktrail/db/entities"
	"github.com/hooktrail/hooktrail/deliverer"
	"github.com/hooktrail/hooktrail/pkg/masking"
	"github.com/hooktrail/hooktrail/pkg/types"
	"github.com/hooktrail/hooktrail/test/mocks"
	"github.com/hooktrail/hooktrail/utils"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestService(events dao.EventDAO, d deliverer.Deliverer) *Service {
	return NewService(Options{
		Log:       zap.NewNop().Sugar(),
		DB:        &db.DB{Events: events},
		Deliverer: d,
	})
}

func failedResponse() *entities.WebhookResponse {
	return &entities.WebhookResponse{
		StatusCode: utils.Pointer(503),
	}
}

func deliveredResponse() *entities.WebhookResponse {
	return &entities.WebhookResponse{
		StatusCode: utils.Pointer(200),
	}
}

func initialEvent() *entities.Event {
	body := masking.NewSecret(`{"object_id":"pay_1"}`)
	return &entities.Event{
		ID:               "evt_1",
		MerchantId:       "mer_1",
		ProfileId:        "pro_1",
		ObjectId:         "pay_1",
		EventType:        entities.EventTypePaymentFailed,
		EventClass:       entities.EventClassPayments,
		InitialAttemptId: "evt_1",
		DeliveryAttempt:  entities.DeliveryAttemptInitial,
		Request: &entities.WebhookRequest{
			Method: http.MethodPost,
			URL:    "https://example.com/webhooks",
			Body:   body,
		},
		Response: failedResponse(),
	}
}

func TestRetryEventNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	svc := newTestService(events, mocks.NewMockDeliverer(ctrl))

	events.EXPECT().Get(gomock.Any(), "mer_1", "evt_missing").Return(nil, nil)

	event, err := svc.RetryEvent(context.TODO(), "mer_1", "evt_missing")
	assert.Nil(t, event)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRetryEventForeignMerchant(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	svc := newTestService(events, mocks.NewMockDeliverer(ctrl))

	// scope mismatch surfaces the same way as a missing event
	events.EXPECT().Get(gomock.Any(), "mer_other", "evt_1").Return(nil, nil)

	event, err := svc.RetryEvent(context.TODO(), "mer_other", "evt_1")
	assert.Nil(t, event)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRetryEventDelivered(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	svc := newTestService(events, mocks.NewMockDeliverer(ctrl))

	initial := initialEvent()
	initial.Response = deliveredResponse()
	initial.IsDeliverySuccessful = utils.Pointer(true)

	events.EXPECT().Get(gomock.Any(), "mer_1", "evt_1").Return(initial, nil)
	events.EXPECT().ListAttempts(gomock.Any(), "mer_1", "evt_1").
		Return([]*entities.Event{initial}, nil)

	event, err := svc.RetryEvent(context.TODO(), "mer_1", "evt_1")
	assert.Nil(t, event)

	var stateErr *InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, entities.DeliveryStatusDelivered, stateErr.Status)
	assert.Equal(t, "event is not retryable: delivery is delivered", err.Error())
}

func TestRetryEventPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	svc := newTestService(events, mocks.NewMockDeliverer(ctrl))

	initial := initialEvent()
	pending := &entities.Event{
		ID:               "evt_2",
		MerchantId:       "mer_1",
		InitialAttemptId: "evt_1",
		DeliveryAttempt:  entities.DeliveryAttemptManualRetry,
		Request:          initial.Request,
		Created:          types.NewTime(time.Now()),
	}

	events.EXPECT().Get(gomock.Any(), "mer_1", "evt_1").Return(initial, nil)
	events.EXPECT().ListAttempts(gomock.Any(), "mer_1", "evt_1").
		Return([]*entities.Event{initial, pending}, nil)

	event, err := svc.RetryEvent(context.TODO(), "mer_1", "evt_1")
	assert.Nil(t, event)

	var stateErr *InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, entities.DeliveryStatusPending, stateErr.Status)
}

func TestRetryEventAbandonedPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	d := mocks.NewMockDeliverer(ctrl)
	svc := newTestService(events, d)

	initial := initialEvent()
	abandoned := &entities.Event{
		ID:               "evt_2",
		MerchantId:       "mer_1",
		InitialAttemptId: "evt_1",
		DeliveryAttempt:  entities.DeliveryAttemptManualRetry,
		Request:          initial.Request,
		Created:          types.NewTime(time.Now().Add(-2 * constants.PendingAttemptTTL)),
	}

	events.EXPECT().Get(gomock.Any(), "mer_1", "evt_1").Return(initial, nil)
	events.EXPECT().ListAttempts(gomock.Any(), "mer_1", "evt_1").
		Return([]*entities.Event{initial, abandoned}, nil)

	// a pending attempt older than the TTL does not wedge the chain
	events.EXPECT().InsertAttempt(gomock.Any(), gomock.Any()).Return(nil)
	d.EXPECT().Deliver(gomock.Any(), gomock.Any()).
		Return(&deliverer.Response{StatusCode: 200, ResponseBody: []byte("ok")})
	events.EXPECT().UpdateDeliveryResult(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	event, err := svc.RetryEvent(context.TODO(), "mer_1", "evt_1")
	assert.NoError(t, err)
	assert.Equal(t, entities.DeliveryStatusDelivered, event.DeliveryStatus())
}

func TestRetryEventReplaysInitialRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	d := mocks.NewMockDeliverer(ctrl)
	svc := newTestService(events, d)

	initial := initialEvent()
	previousRetry := &entities.Event{
		ID:               "evt_2",
		MerchantId:       "mer_1",
		ProfileId:        "pro_1",
		ObjectId:         "pay_1",
		EventType:        initial.EventType,
		EventClass:       initial.EventClass,
		InitialAttemptId: "evt_1",
		DeliveryAttempt:  entities.DeliveryAttemptAutomaticRetry,
		Request:          initial.Request,
		Response:         failedResponse(),
	}

	// retry is requested against a non-initial attempt; the new attempt
	// must still carry the initial attempt's request content
	events.EXPECT().Get(gomock.Any(), "mer_1", "evt_2").Return(previousRetry, nil)
	events.EXPECT().ListAttempts(gomock.Any(), "mer_1", "evt_1").
		Return([]*entities.Event{initial, previousRetry}, nil)

	var inserted *entities.Event
	events.EXPECT().InsertAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *entities.Event) error {
			inserted = event
			return nil
		})

	d.EXPECT().Deliver(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *deliverer.Request) *deliverer.Response {
			assert.Equal(t, "https://example.com/webhooks", req.URL)
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, `{"object_id":"pay_1"}`, string(req.Payload))
			return &deliverer.Response{
				StatusCode:   200,
				ResponseBody: []byte("ok"),
			}
		})

	events.EXPECT().UpdateDeliveryResult(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *entities.Event, result *dao.DeliveryResult) error {
			assert.True(t, result.Successful)
			assert.Equal(t, 200, *result.Response.StatusCode)
			return nil
		})

	event, err := svc.RetryEvent(context.TODO(), "mer_1", "evt_2")
	assert.NoError(t, err)
	assert.NotNil(t, event)

	assert.Same(t, inserted, event)
	assert.NotEqual(t, "evt_1", event.ID)
	assert.NotEqual(t, "evt_2", event.ID)
	assert.Equal(t, "evt_1", event.InitialAttemptId)
	assert.Equal(t, entities.DeliveryAttemptManualRetry, event.DeliveryAttempt)
	assert.Equal(t, initial.Request, event.Request)
	assert.Equal(t, entities.DeliveryStatusDelivered, event.DeliveryStatus())
}

func TestRetryEventTransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	d := mocks.NewMockDeliverer(ctrl)
	svc := newTestService(events, d)

	initial := initialEvent()

	events.EXPECT().Get(gomock.Any(), "mer_1", "evt_1").Return(initial, nil)
	events.EXPECT().ListAttempts(gomock.Any(), "mer_1", "evt_1").
		Return([]*entities.Event{initial}, nil)
	events.EXPECT().InsertAttempt(gomock.Any(), gomock.Any()).Return(nil)

	d.EXPECT().Deliver(gomock.Any(), gomock.Any()).
		Return(&deliverer.Response{Error: errors.New("connection refused")})

	events.EXPECT().UpdateDeliveryResult(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *entities.Event, result *dao.DeliveryResult) error {
			assert.False(t, result.Successful)
			assert.Equal(t, "connection refused", *result.Response.ErrorMessage)
			assert.Nil(t, result.Response.StatusCode)
			return nil
		})

	// the transport failure is data, not an error
	event, err := svc.RetryEvent(context.TODO(), "mer_1", "evt_1")
	assert.NoError(t, err)
	assert.Equal(t, entities.DeliveryStatusFailed, event.DeliveryStatus())
	assert.False(t, *event.IsDeliverySuccessful)
}

func TestRetryEventConcurrentAppend(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	svc := newTestService(events, mocks.NewMockDeliverer(ctrl))

	initial := initialEvent()

	events.EXPECT().Get(gomock.Any(), "mer_1", "evt_1").Return(initial, nil)
	events.EXPECT().ListAttempts(gomock.Any(), "mer_1", "evt_1").
		Return([]*entities.Event{initial}, nil)

	// another retry won the conditional append between the read and the write
	events.EXPECT().InsertAttempt(gomock.Any(), gomock.Any()).
		Return(dao.ErrPendingAttempt)

	event, err := svc.RetryEvent(context.TODO(), "mer_1", "evt_1")
	assert.Nil(t, event)

	var stateErr *InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, entities.DeliveryStatusPending, stateErr.Status)
}

func TestRetryEventStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	svc := newTestService(events, mocks.NewMockDeliverer(ctrl))

	storeErr := errors.New("connection reset")
	events.EXPECT().Get(gomock.Any(), "mer_1", "evt_1").Return(nil, storeErr)

	event, err := svc.RetryEvent(context.TODO(), "mer_1", "evt_1")
	assert.Nil(t, event)
	assert.ErrorIs(t, err, storeErr)
}
