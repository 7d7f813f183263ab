package entities

import (
	"github.com/hooktrail/hooktrail/pkg/types"
)

// Event is one webhook delivery attempt. Attempts that retry the same
// logical occurrence share InitialAttemptId but have distinct IDs; the
// initial attempt's ID equals its InitialAttemptId. Rows are never deleted.
type Event struct {
	ID                   string              `json:"event_id" db:"id"`
	MerchantId           string              `json:"merchant_id" db:"merchant_id"`
	ProfileId            string              `json:"profile_id" db:"profile_id"`
	ObjectId             string              `json:"object_id" db:"object_id"`
	EventType            EventType           `json:"event_type" db:"event_type"`
	EventClass           EventClass          `json:"event_class" db:"event_class"`
	IsDeliverySuccessful *bool               `json:"is_delivery_successful" db:"is_delivery_successful"`
	InitialAttemptId     string              `json:"initial_attempt_id" db:"initial_attempt_id"`
	DeliveryAttempt      DeliveryAttemptKind `json:"delivery_attempt" db:"delivery_attempt"`
	Request              *WebhookRequest     `json:"-" db:"request"`
	Response             *WebhookResponse    `json:"-" db:"response"`
	Created              types.Time          `json:"created" db:"created_at"`
}

type EventClass = string

const (
	EventClassPayments EventClass = "payments"
	EventClassRefunds  EventClass = "refunds"
	EventClassDisputes EventClass = "disputes"
	EventClassMandates EventClass = "mandates"
)

type EventType = string

const (
	EventTypePaymentSucceeded  EventType = "payment_succeeded"
	EventTypePaymentFailed     EventType = "payment_failed"
	EventTypePaymentProcessing EventType = "payment_processing"
	EventTypeActionRequired    EventType = "action_required"
	EventTypeRefundSucceeded   EventType = "refund_succeeded"
	EventTypeRefundFailed      EventType = "refund_failed"
	EventTypeDisputeOpened     EventType = "dispute_opened"
	EventTypeDisputeWon        EventType = "dispute_won"
	EventTypeDisputeLost       EventType = "dispute_lost"
	EventTypeMandateActive     EventType = "mandate_active"
	EventTypeMandateRevoked    EventType = "mandate_revoked"
)

type DeliveryAttemptKind = string

const (
	DeliveryAttemptInitial        DeliveryAttemptKind = "initial_attempt"
	DeliveryAttemptAutomaticRetry DeliveryAttemptKind = "automatic_retry"
	DeliveryAttemptManualRetry    DeliveryAttemptKind = "manual_retry"
)

type DeliveryStatus = string

const (
	// DeliveryStatusPending means the attempt is still in flight with the
	// transport; no response fields are populated yet.
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed    DeliveryStatus = "FAILED"
)

// DeliveryStatus derives the attempt state from the recorded response.
func (e *Event) DeliveryStatus() DeliveryStatus {
	if e.Response == nil {
		return DeliveryStatusPending
	}
	if e.Response.StatusCode != nil &&
		*e.Response.StatusCode >= 200 && *e.Response.StatusCode <= 299 &&
		e.Response.ErrorMessage == nil {
		return DeliveryStatusDelivered
	}
	return DeliveryStatusFailed
}

// IsInitialAttempt reports whether this row heads its attempt chain.
func (e *Event) IsInitialAttempt() bool {
	return e.ID == e.InitialAttemptId
}
