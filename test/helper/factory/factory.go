package factory

import (
	"github.com/hooktrail/hooktrail/constants"
	"github.com/hooktrail/hooktrail/db/entities"
	"github.com/hooktrail/hooktrail/pkg/masking"
	"github.com/hooktrail/hooktrail/utils"
)

// Event

func defaultEvent() entities.Event {
	id := constants.EventIDPrefix + utils.KSUID()
	return entities.Event{
		ID:               id,
		MerchantId:       "mer_test",
		ProfileId:        "pro_test",
		ObjectId:         "pay_" + utils.KSUID(),
		EventType:        entities.EventTypePaymentSucceeded,
		EventClass:       entities.EventClassPayments,
		InitialAttemptId: id,
		DeliveryAttempt:  entities.DeliveryAttemptInitial,
		Request: &entities.WebhookRequest{
			Method: "POST",
			URL:    "https://example.com/webhooks",
			Headers: masking.Headers{
				{Name: "content-type", Value: masking.NewSecret("application/json")},
			},
			Body: masking.NewSecret(`{"status":"succeeded"}`),
		},
	}
}

func Event(opts ...func(*entities.Event)) entities.Event {
	e := defaultEvent()
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func EventP(opts ...func(*entities.Event)) *entities.Event {
	e := Event(opts...)
	return &e
}
