package api

import (
	"context"
	"net/http"

	"vanitycheck/ratelimit"
	"vanitycheck/state"
)

// Ratelimit hits each bucket in order for the requesting client and
// returns the rate limit headers to attach to the response, plus the
// rejecting result when a bucket is exceeded. Limiter backend errors
// fail open.
func Ratelimit(ctx context.Context, r *http.Request, buckets ...ratelimit.Bucket) (map[string]string, *ratelimit.Result) {
	key := ratelimit.ClientKey(r)

	headers := map[string]string{}

	for _, b := range buckets {
		res, err := state.Ratelimiter.Hit(ctx, key, b)

		if err != nil {
			continue
		}

		headers = res.Headers()

		if !res.Allowed {
			return headers, &res
		}
	}

	return headers, nil
}
