package api

import (
	"errors"
	"net/http"

	"github.com/hooktrail/hooktrail/constants"
	"github.com/hooktrail/hooktrail/pkg/contextx"
)

// merchantMiddleware resolves the merchant scope from the header set by the
// authentication layer in front of this service. Every event route is
// scoped; the index is not.
func (api *API) merchantMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			next.ServeHTTP(w, r)
			return
		}

		merchantId := r.Header.Get(constants.MerchantIDHeader)
		if merchantId == "" {
			api.error(400, w, errors.New("missing merchant scope"))
			return
		}

		ctx := contextx.WithContext(r.Context(), &contextx.MContext{
			MerchantID: merchantId,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
