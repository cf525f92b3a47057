package get_discord_user

import (
	"net/http"
	"strconv"
	"time"

	"vanitycheck/api"
	"vanitycheck/discord"
	"vanitycheck/docs"
	"vanitycheck/normalizer"
	"vanitycheck/ratelimit"
	"vanitycheck/state"
	"vanitycheck/types"
	"vanitycheck/validators"

	"github.com/go-chi/chi/v5"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	globalBucket ratelimit.Bucket
	usersBucket  ratelimit.Bucket
)

func Setup() {
	globalBucket = ratelimit.Bucket{
		Name:     "global",
		Requests: state.Config.RateLimits.Global.Requests,
		Time:     time.Duration(state.Config.RateLimits.Global.Time) * time.Second,
	}

	usersBucket = ratelimit.Bucket{
		Name:     "users",
		Requests: state.Config.RateLimits.Users.Requests,
		Time:     time.Duration(state.Config.RateLimits.Users.Time) * time.Second,
	}
}

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Discord User",
		Description: "Looks up the public profile of a Discord user by ID. Avatar and banner come back as full CDN URLs, never raw hashes. Results are cached.",
		Params: []docs.Parameter{
			{
				Name:        "id",
				In:          "path",
				Description: "The user's ID (snowflake)",
				Required:    true,
				Schema:      docs.IdSchema,
			},
		},
		Resp: types.UserLookupResult{},
	}
}

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	headers, rejected := api.Ratelimit(d.Context, r, globalBucket, usersBucket)

	if rejected != nil {
		msg := "You are being rate limited"

		return api.HttpResponse{
			Status:  http.StatusTooManyRequests,
			Json:    types.UserLookupResult{Error: &msg},
			Headers: headers,
		}
	}

	id := chi.URLParam(r, "id")

	if err := validators.UserID(id); err != nil {
		msg := err.Error()

		return api.HttpResponse{
			Status:  http.StatusBadRequest,
			Json:    types.UserLookupResult{Error: &msg},
			Headers: headers,
		}
	}

	cacheKey := "user:" + id

	if cached, ok := state.UserCache.Get(d.Context, cacheKey); ok {
		return api.HttpResponse{
			Bytes:   cached,
			Headers: headers,
		}
	}

	raw, err := state.Discord.FetchUser(d.Context, id)

	if err != nil {
		return upstreamError(err, headers)
	}

	result := types.UserLookupResult{User: normalizer.User(raw)}

	body, err := json.Marshal(result)

	if err != nil {
		state.Logger.Error(err)
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	state.UserCache.Set(d.Context, cacheKey, body, time.Duration(state.Config.Meta.UserCacheTTL)*time.Second)

	return api.HttpResponse{
		Bytes:   body,
		Headers: headers,
	}
}

func upstreamError(err error, headers map[string]string) api.HttpResponse {
	derr, ok := discord.As(err)

	if !ok {
		state.Logger.Error(err)
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	msg := derr.Message

	switch derr.Kind {
	case discord.ErrKindNotFound:
		return api.HttpResponse{
			Status:  http.StatusNotFound,
			Json:    types.UserLookupResult{Error: &msg},
			Headers: headers,
		}
	case discord.ErrKindRateLimited:
		headers["Retry-After"] = strconv.Itoa(int((derr.RetryAfter + time.Second - 1) / time.Second))

		return api.HttpResponse{
			Status:  http.StatusTooManyRequests,
			Json:    types.UserLookupResult{Error: &msg},
			Headers: headers,
		}
	case discord.ErrKindUnauthorized:
		return api.HttpResponse{
			Status:  http.StatusUnauthorized,
			Json:    types.UserLookupResult{Error: &msg},
			Headers: headers,
		}
	case discord.ErrKindUpstream:
		status := derr.Status

		if status == 0 {
			status = http.StatusInternalServerError
		}

		return api.HttpResponse{
			Status:  status,
			Json:    types.UserLookupResult{Error: &msg},
			Headers: headers,
		}
	default:
		return api.HttpResponse{
			Status:  http.StatusInternalServerError,
			Json:    types.UserLookupResult{Error: &msg},
			Headers: headers,
		}
	}
}
