package dao

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/hooktrail/hooktrail/constants"
	"github.com/hooktrail/hooktrail/db/entities"
	"github.com/hooktrail/hooktrail/db/query"
	"github.com/hooktrail/hooktrail/filter"
	"github.com/hooktrail/hooktrail/utils"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrPendingAttempt is returned by InsertAttempt when the chain already has
// an attempt in flight. The pending_attempt partial unique index backs this
// guarantee against concurrent appends.
var ErrPendingAttempt = errors.New("attempt already pending for chain")

type eventDao struct {
	*DAO[entities.Event]
}

func NewEventDao(db *sqlx.DB) EventDAO {
	return &eventDao{
		DAO: NewDAO[entities.Event]("events", db),
	}
}

// DeliveryResult is the recorded outcome of one delivery attempt.
type DeliveryResult struct {
	Response   *entities.WebhookResponse
	Successful bool
}

func (dao *eventDao) Get(ctx context.Context, merchantId, id string) (*entities.Event, error) {
	statement, args := psql.Select("*").From(dao.table).
		Where(sq.Eq{"id": id, "merchant_id": merchantId}).
		MustSql()
	dao.debugSQL(statement, args)
	event := new(entities.Event)
	err := dao.UnsafeDB(ctx).GetContext(ctx, event, statement, args...)
	if errors.Is(err, ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (dao *eventDao) ListByConstraints(ctx context.Context, merchantId string, resolved filter.Resolved) ([]*entities.Event, int64, error) {
	switch f := resolved.Strategy.(type) {
	case filter.ObjectIdFilter:
		return dao.listByObjectId(ctx, merchantId, resolved.ProfileId, f)
	case filter.GenericFilter:
		return dao.listInitialAttempts(ctx, merchantId, resolved.ProfileId, f)
	default:
		return nil, 0, errors.New("unknown filter strategy")
	}
}

// listByObjectId returns every attempt associated with one business object
// in chronological order. Object-level result sets are small; no pagination.
func (dao *eventDao) listByObjectId(ctx context.Context, merchantId string, profileId *string, f filter.ObjectIdFilter) ([]*entities.Event, int64, error) {
	q := query.EventQuery{
		MerchantId: &merchantId,
		ProfileId:  profileId,
		ObjectId:   &f.ObjectId,
	}
	q.Order("created_at", query.ASC)
	q.Order("id", query.ASC)

	list, err := dao.List(ctx, &q)
	if err != nil {
		return nil, 0, err
	}
	return list, int64(len(list)), nil
}

// listInitialAttempts applies the generic range filter over chain-heading
// rows only, newest first. The total count ignores pagination.
func (dao *eventDao) listInitialAttempts(ctx context.Context, merchantId string, profileId *string, f filter.GenericFilter) ([]*entities.Event, int64, error) {
	conditions := func(builder sq.SelectBuilder) sq.SelectBuilder {
		builder = builder.
			Where(sq.Eq{"merchant_id": merchantId}).
			Where("id = initial_attempt_id")
		if profileId != nil {
			builder = builder.Where(sq.Eq{"profile_id": *profileId})
		}
		if f.CreatedAfter != nil {
			builder = builder.Where(sq.GtOrEq{"created_at": *f.CreatedAfter})
		}
		if f.CreatedBefore != nil {
			builder = builder.Where(sq.LtOrEq{"created_at": *f.CreatedBefore})
		}
		if len(f.EventClasses) > 0 {
			builder = builder.Where(sq.Eq{"event_class": f.EventClasses})
		}
		if len(f.EventTypes) > 0 {
			builder = builder.Where(sq.Eq{"event_type": f.EventTypes})
		}
		if f.IsDelivered != nil {
			builder = builder.Where(sq.Eq{"is_delivery_successful": *f.IsDelivered})
		}
		return builder
	}

	statement, args := conditions(psql.Select("COUNT(*)").From(dao.table)).MustSql()
	dao.debugSQL(statement, args)
	var total int64
	if err := dao.DB(ctx).GetContext(ctx, &total, statement, args...); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = constants.DefaultPageSize
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	statement, args = conditions(psql.Select("*").From(dao.table)).
		OrderBy("created_at DESC", "id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		MustSql()
	dao.debugSQL(statement, args)
	list := make([]*entities.Event, 0)
	if err := dao.UnsafeDB(ctx).SelectContext(ctx, &list, statement, args...); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (dao *eventDao) ListAttempts(ctx context.Context, merchantId, initialAttemptId string) ([]*entities.Event, error) {
	q := query.EventQuery{
		MerchantId:       &merchantId,
		InitialAttemptId: &initialAttemptId,
	}
	q.Order("created_at", query.ASC)
	q.Order("id", query.ASC)
	return dao.List(ctx, &q)
}

// reclaimAbandoned records a failed outcome on pending attempts older than
// the pending TTL. Without this a retry whose outcome was never recorded
// would hold the chain's pending slot forever.
func (dao *eventDao) reclaimAbandoned(ctx context.Context, merchantId, initialAttemptId string) error {
	response := &entities.WebhookResponse{
		ErrorMessage: utils.Pointer("delivery outcome was not recorded"),
	}
	statement := `UPDATE events SET response = $1, is_delivery_successful = false
		WHERE merchant_id = $2 AND initial_attempt_id = $3 AND response IS NULL
		AND created_at < now() - $4 * interval '1 millisecond'`
	dao.debugSQL(statement, nil)
	_, err := dao.DB(ctx).ExecContext(ctx, statement,
		response, merchantId, initialAttemptId, constants.PendingAttemptTTL.Milliseconds())
	return err
}

func (dao *eventDao) InsertAttempt(ctx context.Context, event *entities.Event) error {
	return dao.transact(ctx, func(ctx context.Context) error {
		if err := dao.reclaimAbandoned(ctx, event.MerchantId, event.InitialAttemptId); err != nil {
			return err
		}

		statement := `INSERT INTO events
			(id, merchant_id, profile_id, object_id, event_type, event_class, is_delivery_successful, initial_attempt_id, delivery_attempt, request, response)
			SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
			WHERE NOT EXISTS (
				SELECT 1 FROM events WHERE merchant_id = $2 AND initial_attempt_id = $8 AND response IS NULL
			)
			RETURNING *`
		dao.debugSQL(statement, nil)
		err := dao.UnsafeDB(ctx).QueryRowxContext(ctx, statement,
			event.ID,
			event.MerchantId,
			event.ProfileId,
			event.ObjectId,
			event.EventType,
			event.EventClass,
			event.IsDeliverySuccessful,
			event.InitialAttemptId,
			event.DeliveryAttempt,
			event.Request,
			event.Response,
		).StructScan(event)
		if errors.Is(err, ErrNoRows) {
			return ErrPendingAttempt
		}
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.Constraint == "idx_events_pending_attempt" {
			// lost the race against a concurrent append
			return ErrPendingAttempt
		}
		return err
	})
}

func (dao *eventDao) UpdateDeliveryResult(ctx context.Context, event *entities.Event, result *DeliveryResult) error {
	return dao.transact(ctx, func(ctx context.Context) error {
		_, err := dao.update(ctx, event.ID, map[string]interface{}{
			"response":               result.Response,
			"is_delivery_successful": result.Successful,
		})
		if err != nil {
			return err
		}

		// the chain's overall delivery flag lives on the initial row
		if !event.IsInitialAttempt() {
			_, err = dao.update(ctx, event.InitialAttemptId, map[string]interface{}{
				"is_delivery_successful": result.Successful,
			})
		}
		return err
	})
}
