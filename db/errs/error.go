package errs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// DBError marks a persistence-layer failure. Operations abort with no
// partial writes; callers may retry.
type DBError struct {
	Err error
}

func (e *DBError) Error() string {
	return e.Err.Error()
}

func (e *DBError) Unwrap() error {
	return e.Err
}

func NewDBError(err error) *DBError {
	return &DBError{Err: err}
}

func ConvertError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		column := strings.TrimSpace(pgErr.Detail)
		return NewDBError(fmt.Errorf("unique constraint violation: %s", column))
	}

	return err
}
