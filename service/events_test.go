package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/hooktrail/hooktrail/db/entities"
	"github.com/hooktrail/hooktrail/deliverer"
	"github.com/hooktrail/hooktrail/filter"
	"github.com/hooktrail/hooktrail/test/mocks"
	"github.com/hooktrail/hooktrail/utils"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestListEventsResolvesConstraints(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	svc := newTestService(events, mocks.NewMockDeliverer(ctrl))

	expected := []*entities.Event{initialEvent()}
	events.EXPECT().ListByConstraints(gomock.Any(), "mer_1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, merchantId string, resolved filter.Resolved) ([]*entities.Event, int64, error) {
			strategy, ok := resolved.Strategy.(filter.ObjectIdFilter)
			assert.True(t, ok)
			assert.Equal(t, "pay_1", strategy.ObjectId)
			return expected, 1, nil
		})

	list, total, err := svc.ListEvents(context.TODO(), "mer_1", filter.Constraints{
		ObjectId: utils.Pointer("pay_1"),
		Limit:    utils.Pointer(uint16(10)),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, expected, list)
}

func TestGetEventAttemptNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	svc := newTestService(events, mocks.NewMockDeliverer(ctrl))

	initial := initialEvent()
	retry := &entities.Event{
		ID:               "evt_2",
		MerchantId:       "mer_1",
		InitialAttemptId: "evt_1",
		DeliveryAttempt:  entities.DeliveryAttemptManualRetry,
		Request:          initial.Request,
		Response:         deliveredResponse(),
	}

	events.EXPECT().Get(gomock.Any(), "mer_1", "evt_2").Return(retry, nil)
	events.EXPECT().ListAttempts(gomock.Any(), "mer_1", "evt_1").
		Return([]*entities.Event{initial, retry}, nil)

	detail, err := svc.GetEvent(context.TODO(), "mer_1", "evt_2")
	assert.NoError(t, err)
	assert.Equal(t, 2, detail.AttemptNumber)
	assert.Equal(t, retry.Request, detail.Request)
	assert.Equal(t, retry.Response, detail.Response)
}

func TestGetEventNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	svc := newTestService(events, mocks.NewMockDeliverer(ctrl))

	events.EXPECT().Get(gomock.Any(), "mer_1", "evt_missing").Return(nil, nil)

	detail, err := svc.GetEvent(context.TODO(), "mer_1", "evt_missing")
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestListAttemptsResolvesChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	svc := newTestService(events, mocks.NewMockDeliverer(ctrl))

	initial := initialEvent()
	retry := &entities.Event{
		ID:               "evt_2",
		MerchantId:       "mer_1",
		InitialAttemptId: "evt_1",
		DeliveryAttempt:  entities.DeliveryAttemptManualRetry,
	}

	// any member of the chain resolves to the whole chain
	events.EXPECT().Get(gomock.Any(), "mer_1", "evt_2").Return(retry, nil)
	events.EXPECT().ListAttempts(gomock.Any(), "mer_1", "evt_1").
		Return([]*entities.Event{initial, retry}, nil)

	chain, err := svc.ListAttempts(context.TODO(), "mer_1", "evt_2")
	assert.NoError(t, err)
	assert.Len(t, chain, 2)
	assert.True(t, chain[0].IsInitialAttempt())
	assert.Equal(t, "evt_1", chain[1].InitialAttemptId)
}

func TestIngestEventDispatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventDAO(ctrl)
	d := mocks.NewMockDeliverer(ctrl)
	svc := newTestService(events, d)

	incoming := initialEvent()
	incoming.ID = ""
	incoming.InitialAttemptId = ""
	incoming.Response = nil

	events.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *entities.Event) error {
			assert.True(t, event.IsInitialAttempt())
			assert.Equal(t, entities.DeliveryAttemptInitial, event.DeliveryAttempt)
			assert.Nil(t, event.Response)
			return nil
		})

	d.EXPECT().Deliver(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *deliverer.Request) *deliverer.Response {
			assert.Equal(t, http.MethodPost, req.Method)
			return &deliverer.Response{
				StatusCode:   200,
				ResponseBody: []byte("ok"),
				Header:       http.Header{"Content-Type": []string{"text/plain"}},
			}
		})

	events.EXPECT().UpdateDeliveryResult(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	event, err := svc.IngestEvent(context.TODO(), incoming)
	assert.NoError(t, err)
	assert.True(t, event.IsInitialAttempt())
	assert.Equal(t, entities.DeliveryStatusDelivered, event.DeliveryStatus())
	assert.True(t, *event.IsDeliverySuccessful)
}

func TestDeliveryResultMasksResponseContent(t *testing.T) {
	res := &deliverer.Response{
		StatusCode:   201,
		ResponseBody: []byte(`{"received":true}`),
		Header: http.Header{
			"Content-Type":  []string{"application/json"},
			"Authorization": []string{"Bearer tok"},
		},
	}

	result := deliveryResult(res)
	assert.True(t, result.Successful)
	assert.Equal(t, 201, *result.Response.StatusCode)
	assert.Equal(t, `{"received":true}`, result.Response.Body.Expose())
	assert.Equal(t, "*****", result.Response.Body.String())

	headers := result.Response.Headers
	assert.Equal(t, "authorization", headers[0].Name)
	assert.Equal(t, "content-type", headers[1].Name)
	assert.Equal(t, "Bearer tok", headers[0].Value.Expose())
	assert.NotContains(t, headers[0].Value.String(), "tok")
}

func TestDeliveryResultNon2xx(t *testing.T) {
	res := &deliverer.Response{
		StatusCode:   500,
		ResponseBody: []byte("boom"),
		Header:       http.Header{},
	}

	result := deliveryResult(res)
	assert.False(t, result.Successful)
	assert.Equal(t, 500, *result.Response.StatusCode)
	assert.Nil(t, result.Response.ErrorMessage)
}
