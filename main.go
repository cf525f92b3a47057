package main

import (
	"net/http"
	"strings"
	"time"

	"vanitycheck/api"
	"vanitycheck/config"
	"vanitycheck/constants"
	"vanitycheck/docs"
	"vanitycheck/routes/diagnostics"
	"vanitycheck/routes/dusers"
	"vanitycheck/routes/vanity"
	"vanitycheck/state"
	"vanitycheck/zapchi"

	_ "embed"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed docs/assets/docs.html
var docsHTML string

var openapi []byte

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// This API only ever serves small JSON payloads
		r.Body = http.MaxBytesReader(w, r.Body, 1024*1024)

		origin := r.Header.Get("Origin")

		if origin == state.Config.Sites.Frontend.Parse() || strings.HasPrefix(origin, "http://localhost:") {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}

		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Trace")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		next.ServeHTTP(w, r)
	})
}

func main() {
	state.Setup()

	state.Logger.Info("Starting vanity check API, env=", config.CurrentEnv)

	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer,
		middleware.RealIP,
		middleware.CleanPath,
		corsMiddleware,
		zapchi.Logger(state.Logger, "api"),
		middleware.Timeout(30*time.Second),
	)

	routers := []api.APIRouter{
		// Use same order as routes folder
		diagnostics.Router{},
		dusers.Router{},
		vanity.Router{},
	}

	for _, router := range routers {
		name, desc := router.Tag()

		if name == "" {
			panic("Router tag name cannot be empty")
		}

		docs.AddTag(name, desc)
		api.CurrentTag = name

		router.Routes(r)
	}

	docs.AddServer(state.Config.Sites.API.Parse(), "Vanity Check API")

	// Marshalled once here to avoid doing it on every request
	var err error
	openapi, err = json.Marshal(docs.GetSchema())

	if err != nil {
		panic(err)
	}

	r.Get("/openapi", func(w http.ResponseWriter, r *http.Request) {
		w.Write(openapi)
	})

	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(docsHTML))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(constants.NotFoundPage))
	})

	state.Logger.Info("Listening on ", state.Config.Meta.Port.Parse())

	err = http.ListenAndServe(state.Config.Meta.Port.Parse(), r)

	if err != nil {
		state.Logger.Fatal(err)
	}
}
