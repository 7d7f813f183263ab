package errs

import "errors"

var ErrRequestValidate = errors.New("request validation")

type ValidateError struct {
	err     error
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields"`
}

func NewValidateError(err error) *ValidateError {
	return &ValidateError{
		err:     err,
		Message: err.Error(),
		Fields:  make(map[string]interface{}),
	}
}

func (e *ValidateError) Error() string {
	return e.err.Error()
}
