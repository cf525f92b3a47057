package dusers

import (
	"vanitycheck/api"
	"vanitycheck/routes/dusers/endpoints/get_discord_user"

	"github.com/go-chi/chi/v5"
)

const (
	tagName = "Discord Users"
)

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "Public Discord user profile lookups"
}

func (b Router) Routes(r *chi.Mux) {
	api.Route{
		Pattern: "/api/users/{id}",
		OpId:    "get_discord_user",
		Method:  api.GET,
		Docs:    get_discord_user.Docs,
		Handler: get_discord_user.Route,
		Setup:   get_discord_user.Setup,
	}.Route(r)
}
