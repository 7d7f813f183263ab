package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/hooktrail/hooktrail/db/errs"
	"github.com/hooktrail/hooktrail/pkg/http/response"
	"github.com/hooktrail/hooktrail/pkg/types"
	"go.uber.org/zap"
)

// PanicRecovery turns panics into JSON error responses. Store errors
// surface as 500s and are safe for the caller to retry.
func PanicRecovery(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if e := recover(); e != nil {
				var err error
				switch v := e.(type) {
				case error:
					err = v
				default:
					err = errors.New(fmt.Sprint(e))
				}

				var dbErr *errs.DBError
				if errors.As(err, &dbErr) {
					zap.S().Errorf("store error: %v", dbErr)
					response.JSON(w, 500, types.ErrorResponse{Message: "datastore unavailable"})
					return
				}

				buf := make([]byte, 2048)
				n := runtime.Stack(buf, false)
				buf = buf[:n]

				zap.S().Errorf("panic recovered: %v\n %s", err, buf)
				response.JSON(w, 500, types.ErrorResponse{Message: "internal error"})
			}
		}()

		h.ServeHTTP(w, r)
	})
}
