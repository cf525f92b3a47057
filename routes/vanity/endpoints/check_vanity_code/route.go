package check_vanity_code

import (
	"net/http"
	"strconv"
	"strings"
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
	vanityBucket ratelimit.Bucket
)

func Setup() {
	globalBucket = ratelimit.Bucket{
		Name:     "global",
		Requests: state.Config.RateLimits.Global.Requests,
		Time:     time.Duration(state.Config.RateLimits.Global.Time) * time.Second,
	}

	vanityBucket = ratelimit.Bucket{
		Name:     "vanity",
		Requests: state.Config.RateLimits.Vanity.Requests,
		Time:     time.Duration(state.Config.RateLimits.Vanity.Time) * time.Second,
	}
}

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Check Vanity Code",
		Description: "Checks whether a vanity invite code is available to claim. Taken codes include a summary of the guild currently holding them. Results are cached briefly; cached responses carry the `X-Vanity-Cached` header.",
		Params: []docs.Parameter{
			{
				Name:        "code",
				In:          "path",
				Description: "The vanity code to check",
				Required:    true,
				Schema:      docs.IdSchema,
			},
		},
		Resp: types.VanityCheckResult{},
	}
}

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	headers, rejected := api.Ratelimit(d.Context, r, globalBucket, vanityBucket)

	if rejected != nil {
		retryAfter := rejected.RetryAfterSeconds()
		msg := "You are being rate limited"

		return api.HttpResponse{
			Status:  http.StatusTooManyRequests,
			Json:    types.VanityCheckResult{Error: &msg, RetryAfter: &retryAfter},
			Headers: headers,
		}
	}

	code := chi.URLParam(r, "code")

	if err := validators.VanityCode(code); err != nil {
		msg := err.Error()

		return api.HttpResponse{
			Status:  http.StatusBadRequest,
			Json:    types.VanityCheckResult{Error: &msg},
			Headers: headers,
		}
	}

	// Vanity codes are case-insensitive upstream
	cacheKey := "vanity:" + strings.ToLower(code)

	if cached, ok := state.VanityCache.Get(d.Context, cacheKey); ok {
		headers["X-Vanity-Cached"] = "true"

		return api.HttpResponse{
			Bytes:   cached,
			Headers: headers,
		}
	}

	lookup, err := state.Discord.CheckInvite(d.Context, code)

	if err != nil {
		return upstreamError(err, headers)
	}

	result := normalizer.Vanity(lookup)

	body, err := json.Marshal(result)

	if err != nil {
		state.Logger.Error(err)
		return api.DefaultResponse(http.StatusInternalServerError)
	}

	// Both taken and available results are cached under the same TTL
	state.VanityCache.Set(d.Context, cacheKey, body, time.Duration(state.Config.Meta.VanityCacheTTL)*time.Second)

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
	case discord.ErrKindRateLimited:
		retryAfter := int((derr.RetryAfter + time.Second - 1) / time.Second)
		headers["Retry-After"] = strconv.Itoa(retryAfter)

		return api.HttpResponse{
			Status:  http.StatusTooManyRequests,
			Json:    types.VanityCheckResult{Error: &msg, RetryAfter: &retryAfter},
			Headers: headers,
		}
	case discord.ErrKindUnauthorized:
		return api.HttpResponse{
			Status:  http.StatusUnauthorized,
			Json:    types.VanityCheckResult{Error: &msg},
			Headers: headers,
		}
	case discord.ErrKindUpstream:
		status := derr.Status

		if status == 0 {
			status = http.StatusInternalServerError
		}

		return api.HttpResponse{
			Status:  status,
			Json:    types.VanityCheckResult{Error: &msg},
			Headers: headers,
		}
	default:
		// Timeouts, transport failures and contract-breaking payloads
		// all surface as our own server error
		return api.HttpResponse{
			Status:  http.StatusInternalServerError,
			Json:    types.VanityCheckResult{Error: &msg},
			Headers: headers,
		}
	}
}
