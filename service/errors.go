package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hooktrail/hooktrail/db/entities"
)

// ErrEventNotFound covers both a missing event and a merchant scope
// mismatch, so a caller cannot probe for another tenant's events.
var ErrEventNotFound = errors.New("event not found")

// InvalidStateError rejects a retry whose chain is not in a retryable
// state: an attempt is still in flight, or the webhook was already
// delivered.
type InvalidStateError struct {
	Status entities.DeliveryStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("event is not retryable: delivery is %s", strings.ToLower(e.Status))
}
