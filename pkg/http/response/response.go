package response

import (
	"encoding/json"
	"net/http"

	"github.com/hooktrail/hooktrail/constants"
)

func JSON(w http.ResponseWriter, code int, data interface{}) {
	for name, value := range constants.DefaultResponseHeaders {
		w.Header().Set(name, value)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	w.WriteHeader(code)

	if data == nil {
		return
	}

	var bytes []byte
	switch v := data.(type) {
	case string:
		bytes = []byte(v)
	default:
		var err error
		bytes, err = json.Marshal(data)
		if err != nil {
			panic(err)
		}
	}
	_, err := w.Write(bytes)
	if err != nil {
		panic(err)
	}
}
