package dao

import (
	"context"
	"database/sql"
	"reflect"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/hooktrail/hooktrail/db/errs"
	"github.com/hooktrail/hooktrail/db/query"
	"github.com/hooktrail/hooktrail/db/transaction"
	"github.com/hooktrail/hooktrail/utils"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var ErrNoRows = sql.ErrNoRows

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Queryable is an interface to be used interchangeably for sqlx.DB and sqlx.Tx
type Queryable interface {
	sqlx.ExtContext
	GetContext(context.Context, interface{}, string, ...interface{}) error
	SelectContext(context.Context, interface{}, string, ...interface{}) error
}

type DAO[T any] struct {
	log   *zap.SugaredLogger
	db    *sqlx.DB
	table string
}

func NewDAO[T any](table string, db *sqlx.DB) *DAO[T] {
	dao := DAO[T]{
		log:   zap.S(),
		db:    db,
		table: table,
	}
	return &dao
}

func (dao *DAO[T]) debugSQL(sql string, args []interface{}) {
	dao.log.Debugf("[dao] execute: %s", sql)
}

func (dao *DAO[T]) DB(ctx context.Context) Queryable {
	if ctx == nil {
		ctx = context.TODO()
	}

	if tx, ok := transaction.FromContext(ctx); ok {
		return tx
	}

	return dao.db
}

func (dao *DAO[T]) UnsafeDB(ctx context.Context) Queryable {
	db := dao.DB(ctx)

	if tx, ok := db.(*sqlx.Tx); ok {
		return tx.Unsafe()
	}

	return db.(*sqlx.DB).Unsafe()
}

// transact runs fn within a transaction carried through the context, so
// nested DAO calls share it.
func (dao *DAO[T]) transact(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := transaction.FromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := dao.db.Beginx()
	if err != nil {
		return err
	}

	err = fn(transaction.WithTx(ctx, tx))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (dao *DAO[T]) List(ctx context.Context, q query.Queryer) (list []*T, err error) {
	builder := psql.Select("*").From(dao.table)
	where := q.WhereMap()
	if len(where) > 0 {
		builder = builder.Where(where)
	}
	if q.Limit() != 0 {
		builder = builder.Offset(uint64(q.Offset()))
		builder = builder.Limit(uint64(q.Limit()))
	}
	for _, order := range q.Orders() {
		builder = builder.OrderBy(order.Column + " " + order.Sort)
	}
	statement, args := builder.MustSql()
	dao.debugSQL(statement, args)
	list = make([]*T, 0)
	err = dao.UnsafeDB(ctx).SelectContext(ctx, &list, statement, args...)
	return
}

func travel(entity interface{}, fn func(field reflect.StructField, value reflect.Value)) {
	t := reflect.TypeOf(entity)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	v := reflect.ValueOf(entity)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)
		if field.Anonymous {
			travel(value.Interface(), fn)
		} else {
			fn(field, value)
		}
	}
}

func (dao *DAO[T]) Insert(ctx context.Context, entity *T) error {
	columns := make([]string, 0)
	values := make([]interface{}, 0)
	travel(entity, func(f reflect.StructField, v reflect.Value) {
		column := utils.DefaultIfZero(f.Tag.Get("db"), strings.ToLower(f.Name))
		switch column {
		case "created_at": // filled by the database
		default:
			columns = append(columns, column)
			values = append(values, v.Interface())
		}
	})
	statement, args := psql.Insert(dao.table).Columns(columns...).Values(values...).
		Suffix("RETURNING *").
		MustSql()
	dao.debugSQL(statement, args)
	return errs.ConvertError(dao.UnsafeDB(ctx).QueryRowxContext(ctx, statement, args...).StructScan(entity))
}

func (dao *DAO[T]) update(ctx context.Context, id string, maps map[string]interface{}) (int64, error) {
	statement, args := psql.Update(dao.table).SetMap(maps).Where(sq.Eq{"id": id}).MustSql()
	dao.debugSQL(statement, args)
	result, err := dao.DB(ctx).ExecContext(ctx, statement, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
