package service

import (
	"context"
	"errors"
	"time"

	"github.com/hooktrail/hooktrail/constants"
	"github.com/hooktrail/hooktrail/db/dao"
	"github.com/hooktrail/hooktrail/db/entities"
	"github.com/hooktrail/hooktrail/utils"
)

// RetryEvent re-delivers a previously failed webhook. The new attempt
// replays the request content of the chain's initial attempt, not the most
// recent one: intervening attempts may have been triggered with stale data.
//
// Preconditions are checked before any transport call: the event must exist
// under the merchant scope, and the chain's terminal attempt must be
// failed. A pending terminal attempt means a retry is already in flight,
// unless it is older than the pending TTL and counts as abandoned; a
// delivered one means there is nothing to retry. The store-level append is
// conditional, so two concurrent retries on one chain can never both
// append.
func (s *Service) RetryEvent(ctx context.Context, merchantId, eventId string) (*entities.Event, error) {
	event, err := s.db.Events.Get(ctx, merchantId, eventId)
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
	if len(chain) == 0 {
		return nil, ErrEventNotFound
	}

	terminal := chain[len(chain)-1]
	switch status := terminal.DeliveryStatus(); status {
	case entities.DeliveryStatusDelivered:
		return nil, &InvalidStateError{Status: status}
	case entities.DeliveryStatusPending:
		// an abandoned pending attempt no longer counts as in flight; the
		// store records a failed outcome on it when the new attempt is
		// appended
		if time.Since(terminal.Created.Time) < constants.PendingAttemptTTL {
			return nil, &InvalidStateError{Status: status}
		}
	}

	initial := chain[0]
	attempt := &entities.Event{
		ID:               constants.EventIDPrefix + utils.KSUID(),
		MerchantId:       initial.MerchantId,
		ProfileId:        initial.ProfileId,
		ObjectId:         initial.ObjectId,
		EventType:        initial.EventType,
		EventClass:       initial.EventClass,
		InitialAttemptId: initial.ID,
		DeliveryAttempt:  entities.DeliveryAttemptManualRetry,
		Request:          initial.Request,
	}

	if err := s.db.Events.InsertAttempt(ctx, attempt); err != nil {
		if errors.Is(err, dao.ErrPendingAttempt) {
			return nil, &InvalidStateError{Status: entities.DeliveryStatusPending}
		}
		return nil, err
	}

	s.log.Infow("retrying webhook delivery",
		"event_id", attempt.ID,
		"initial_attempt_id", attempt.InitialAttemptId,
	)

	if err := s.deliver(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}
