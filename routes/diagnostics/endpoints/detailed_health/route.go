package detailed_health

import (
	"net/http"
	"runtime"
	"time"

	"vanitycheck/api"
	"vanitycheck/docs"
	"vanitycheck/state"
	"vanitycheck/types"
)

const bytesPerMiB = 1024 * 1024

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Detailed Health",
		Description: "Verbose health probe: checks upstream reachability with a known-good invite, reports process memory, uptime and rate limiter activity. The probe counts against upstream pacing, so poll this sparingly.",
		Resp:        types.DetailedHealth{},
	}
}

func Route(d api.RouteData, r *http.Request) api.HttpResponse {
	upstream := types.UpstreamHealth{Status: "unknown"}

	probeStart := time.Now()

	_, err := state.Discord.CheckInvite(d.Context, state.Config.Meta.ProbeInvite)

	if err != nil {
		state.Logger.Error("health probe failed: ", err)
		upstream.Status = "down"
	} else {
		latency := time.Since(probeStart).Milliseconds()
		upstream.Status = "up"
		upstream.LatencyMS = &latency
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	status := "healthy"

	if upstream.Status != "up" {
		status = "degraded"
	}

	health := types.DetailedHealth{
		Status:     status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		UptimeSecs: time.Since(state.StartedAt).Seconds(),
		Memory: types.MemoryHealth{
			HeapUsed:  mem.HeapAlloc / bytesPerMiB,
			HeapTotal: mem.HeapSys / bytesPerMiB,
		},
		Discord:    upstream,
		RateLimits: ratelimitHealth(d),
	}

	resp := api.HttpResponse{Json: health}

	if status != "healthy" {
		resp.Status = http.StatusServiceUnavailable
	}

	return resp
}

func ratelimitHealth(d api.RouteData) types.RateLimitHealth {
	stats := state.Ratelimiter.Stats(d.Context)

	return types.RateLimitHealth{
		Total:  stats.Total,
		Active: stats.Active,
	}
}
