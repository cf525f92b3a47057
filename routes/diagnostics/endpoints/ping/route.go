package ping

import (
	"net/http"

	"vanitycheck/api"
	"vanitycheck/docs"
	"vanitycheck/types"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var healthy []byte

func Setup() {
	// Marshalled once to avoid doing it on every probe
	var err error
	healthy, err = json.Marshal(types.Health{Status: "healthy"})

	if err != nil {
		panic(err)
	}
}

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Ping Server",
		Description: "Basic liveness probe. Returns a static healthy status whenever the process is serving requests.",
		Resp:        types.Health{},
	}
}

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	return api.HttpResponse{
		Bytes: healthy,
	}
}
