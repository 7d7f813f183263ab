// Package filter resolves user-supplied event listing constraints into one
// of two mutually exclusive lookup strategies. The precedence rule lives
// here and nowhere else: a non-empty object_id always wins and turns the
// query into a key lookup, everything else becomes a range filter.
package filter

import (
	"strings"
	"time"

	"github.com/hooktrail/hooktrail/db/entities"
)

// Constraints is the raw constraint set as supplied by the caller. Every
// field is optional; any combination is legal.
type Constraints struct {
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Limit         *uint16
	Offset        *uint16
	ObjectId      *string
	ProfileId     *string
	EventClasses  []entities.EventClass
	EventTypes    []entities.EventType
	IsDelivered   *bool
}

// Strategy is the resolved lookup strategy: GenericFilter or ObjectIdFilter.
type Strategy interface {
	strategy()
}

// GenericFilter is a range query over initial delivery attempts. Limit and
// Offset are widened to the store's signed 64-bit range; Limit <= 0 means
// the store default page size.
type GenericFilter struct {
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Limit         int64
	Offset        int64
	EventClasses  []entities.EventClass
	EventTypes    []entities.EventType
	IsDelivered   *bool
}

// ObjectIdFilter is a key lookup of every delivery attempt associated with
// one business object (payment, refund, ...).
type ObjectIdFilter struct {
	ObjectId string
}

func (GenericFilter) strategy()  {}
func (ObjectIdFilter) strategy() {}

// Resolved carries the chosen strategy plus the profile scope, which ANDs
// onto whichever strategy results.
type Resolved struct {
	ProfileId *string
	Strategy  Strategy
}

// Resolve maps a constraint set to exactly one strategy. It is total: no
// combination of fields fails. A whitespace-only object_id counts as absent
// rather than as a literal match.
func Resolve(c Constraints) Resolved {
	resolved := Resolved{
		ProfileId: c.ProfileId,
	}

	if c.ObjectId != nil {
		if objectId := strings.TrimSpace(*c.ObjectId); objectId != "" {
			resolved.Strategy = ObjectIdFilter{ObjectId: objectId}
			return resolved
		}
	}

	generic := GenericFilter{
		CreatedAfter:  c.CreatedAfter,
		CreatedBefore: c.CreatedBefore,
		EventClasses:  c.EventClasses,
		EventTypes:    c.EventTypes,
		IsDelivered:   c.IsDelivered,
	}
	if c.Limit != nil {
		generic.Limit = int64(*c.Limit)
	}
	if c.Offset != nil {
		generic.Offset = int64(*c.Offset)
	}
	resolved.Strategy = generic
	return resolved
}
