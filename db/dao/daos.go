package dao

import (
	"context"

	"github.com/hooktrail/hooktrail/db/entities"
	"github.com/hooktrail/hooktrail/filter"
)

type EventDAO interface {
	// Get returns the event under the merchant scope, or nil when it does
	// not exist or belongs to another merchant.
	Get(ctx context.Context, merchantId, id string) (*entities.Event, error)

	// Insert appends an initial attempt row.
	Insert(ctx context.Context, event *entities.Event) error

	// InsertAttempt appends a retry attempt row, conditional on no pending
	// attempt existing in the chain. Returns ErrPendingAttempt when the
	// condition fails.
	InsertAttempt(ctx context.Context, event *entities.Event) error

	// ListByConstraints applies a resolved filter strategy under the
	// merchant scope and returns the matching rows plus the total count
	// ignoring pagination.
	ListByConstraints(ctx context.Context, merchantId string, resolved filter.Resolved) ([]*entities.Event, int64, error)

	// ListAttempts returns the attempt chain, ascending by creation time.
	ListAttempts(ctx context.Context, merchantId, initialAttemptId string) ([]*entities.Event, error)

	// UpdateDeliveryResult records the outcome of an attempt exactly once
	// and maintains the chain's overall delivery flag on the initial row.
	UpdateDeliveryResult(ctx context.Context, event *entities.Event, result *DeliveryResult) error
}
