package diagnostics

import (
	"vanitycheck/api"
	"vanitycheck/routes/diagnostics/endpoints/detailed_health"
	"vanitycheck/routes/diagnostics/endpoints/ping"

	"github.com/go-chi/chi/v5"
)

const (
	tagName = "Diagnostics"
)

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "Health and diagnostics endpoints"
}

func (b Router) Routes(r *chi.Mux) {
	api.Route{
		Pattern: "/health",
		OpId:    "ping",
		Method:  api.GET,
		Docs:    ping.Docs,
		Handler: ping.Route,
		Setup:   ping.Setup,
	}.Route(r)

	// Load balancers probe /health; browsers behind the CORS prefix
	// use /api/health
	api.Route{
		Pattern: "/api/health",
		OpId:    "api_ping",
		Method:  api.GET,
		Docs:    ping.Docs,
		Handler: ping.Route,
	}.Route(r)

	api.Route{
		Pattern: "/health/detailed",
		OpId:    "detailed_health",
		Method:  api.GET,
		Docs:    detailed_health.Docs,
		Handler: detailed_health.Route,
	}.Route(r)
}
