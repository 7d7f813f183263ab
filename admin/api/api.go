package api

import (
	"net/http"
	"net/http/pprof"

	"github.com/gorilla/mux"
	"github.com/hooktrail/hooktrail/config"
	"github.com/hooktrail/hooktrail/pkg/errs"
	"github.com/hooktrail/hooktrail/pkg/http/middlewares"
	"github.com/hooktrail/hooktrail/pkg/http/response"
	"github.com/hooktrail/hooktrail/pkg/types"
	"github.com/hooktrail/hooktrail/service"
)

const MsgNotFound = "Not found"

type API struct {
	cfg         *config.Config
	service     *service.Service
	middlewares []mux.MiddlewareFunc
}

type Options struct {
	Config      *config.Config
	Service     *service.Service
	Middlewares []mux.MiddlewareFunc
}

func NewAPI(opts Options) *API {
	return &API{
		cfg:         opts.Config,
		service:     opts.Service,
		middlewares: opts.Middlewares,
	}
}

// param returns the value of an url variable
func (api *API) param(r *http.Request, variable string) string {
	return mux.Vars(r)[variable]
}

func (api *API) json(code int, w http.ResponseWriter, data interface{}) {
	response.JSON(w, code, data)
}

func (api *API) error(code int, w http.ResponseWriter, err error) {
	if e, ok := err.(*errs.ValidateError); ok {
		api.json(code, w, types.ErrorResponse{
			Message: "Request Validation",
			Error:   e,
		})
		return
	}
	api.json(code, w, types.ErrorResponse{Message: err.Error()})
}

func (api *API) assert(err error) {
	if err != nil {
		panic(err)
	}
}

// Handler returns a http.Handler
func (api *API) Handler() http.Handler {
	r := mux.NewRouter()

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, 404, types.ErrorResponse{Message: "not found"})
	})

	for _, m := range api.middlewares {
		r.Use(m)
	}
	r.Use(middlewares.PanicRecovery)
	r.Use(api.merchantMiddleware)

	r.HandleFunc("/", api.Index).Methods("GET")

	if api.cfg.Admin.DebugEndpoints {
		r.HandleFunc("/debug/pprof/profile", pprof.Profile).Methods("GET")
		r.HandleFunc("/debug/pprof/symbol", pprof.Symbol).Methods("GET")
		r.HandleFunc("/debug/pprof/trace", pprof.Trace).Methods("GET")
		r.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline).Methods("GET")
		r.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index).Methods("GET")
	}

	r.HandleFunc("/events", api.ListEvents).Methods("GET")
	r.HandleFunc("/events", api.CreateEvent).Methods("POST")
	r.HandleFunc("/events/{id}", api.GetEvent).Methods("GET")
	r.HandleFunc("/events/{id}/attempts", api.ListAttempts).Methods("GET")
	r.HandleFunc("/events/{id}/retry", api.RetryEvent).Methods("POST")

	return r
}
