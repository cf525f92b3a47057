package vanity

import (
	"vanitycheck/api"
	"vanitycheck/routes/vanity/endpoints/check_vanity_code"

	"github.com/go-chi/chi/v5"
)

const (
	tagName = "Vanity"
)

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "Vanity invite code availability checks"
}

func (b Router) Routes(r *chi.Mux) {
	api.Route{
		Pattern: "/api/vanity/{code}",
		OpId:    "check_vanity_code",
		Method:  api.GET,
		Docs:    check_vanity_code.Docs,
		Handler: check_vanity_code.Route,
		Setup:   check_vanity_code.Setup,
	}.Route(r)

	// Some clients cannot issue cross-origin GETs with custom headers,
	// so the check is also accepted as a POST
	api.Route{
		Pattern: "/api/vanity/{code}",
		OpId:    "check_vanity_code_post",
		Method:  api.POST,
		Docs:    check_vanity_code.Docs,
		Handler: check_vanity_code.Route,
	}.Route(r)
}
