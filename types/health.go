package types

// Health is the basic liveness probe response.
type Health struct {
	Status string `json:"status" description:"Either 'healthy' or 'degraded'"`
}

// UpstreamHealth reports reachability of the Discord API.
type UpstreamHealth struct {
	Status    string `json:"status" description:"'up', 'down' or 'unknown'"`
	LatencyMS *int64 `json:"latency" description:"Probe round-trip in milliseconds, if up"`
}

// MemoryHealth is a snapshot of process heap usage in MiB.
type MemoryHealth struct {
	HeapUsed  uint64 `json:"heapUsed"`
	HeapTotal uint64 `json:"heapTotal"`
}

// RateLimitHealth reports limiter bucket activity.
type RateLimitHealth struct {
	Total  int `json:"total" description:"Total tracked client buckets"`
	Active int `json:"active" description:"Buckets with at least one hit in the current window"`
}

// DetailedHealth is the verbose health probe response.
type DetailedHealth struct {
	Status     string          `json:"status"`
	Timestamp  string          `json:"timestamp"`
	UptimeSecs float64         `json:"uptime"`
	Memory     MemoryHealth    `json:"memory"`
	Discord    UpstreamHealth  `json:"discord"`
	RateLimits RateLimitHealth `json:"rateLimits"`
}
