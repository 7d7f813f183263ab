package api

import (
	"net/http"

	"github.com/hooktrail/hooktrail"
	"github.com/hooktrail/hooktrail/config"
)

type IndexResponse struct {
	Version       string         `json:"version"`
	Message       string         `json:"message"`
	Configuration *config.Config `json:"configuration"`
}

func (api *API) Index(w http.ResponseWriter, r *http.Request) {
	var response IndexResponse

	response.Version = hooktrail.VERSION
	response.Message = "Welcome to Hooktrail"
	response.Configuration = api.cfg

	api.json(200, w, response)
}
