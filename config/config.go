package config

import (
	_ "embed"
	"strings"
)

const (
	CurrentEnvProd    = "prod"
	CurrentEnvStaging = "staging"
)

//go:embed current-env
var CurrentEnv string

func init() {
	CurrentEnv = strings.TrimSpace(CurrentEnv)

	if CurrentEnv != CurrentEnvProd && CurrentEnv != CurrentEnvStaging {
		panic("invalid environment")
	}
}

// Common struct for values that differ between staging and production environments
type Differs[T any] struct {
	Staging T `yaml:"staging" comment:"Staging value" validate:"required"`
	Prod    T `yaml:"prod" comment:"Production value" validate:"required"`
}

func (d *Differs[T]) Parse() T {
	if CurrentEnv == CurrentEnvProd {
		return d.Prod
	} else if CurrentEnv == CurrentEnvStaging {
		return d.Staging
	} else {
		panic("invalid environment")
	}
}

type Config struct {
	DiscordAuth DiscordAuth `yaml:"discord_auth" validate:"required"`
	Sites       Sites       `yaml:"sites" validate:"required"`
	RateLimits  RateLimits  `yaml:"rate_limits" validate:"required"`
	Meta        Meta        `yaml:"meta" validate:"required"`
}

type DiscordAuth struct {
	Token     string `yaml:"token" comment:"Discord bot token used for upstream calls. The service cannot start without it" validate:"required"`
	APIUrl    string `yaml:"api_url" default:"https://discord.com/api/v10" comment:"Discord REST API base URL" validate:"required,httporhttps"`
	UserAgent string `yaml:"user_agent" default:"DiscordBot (https://vanitycheck.app, 1.0.0)" comment:"User-Agent sent on upstream calls" validate:"required"`
}

type Sites struct {
	Frontend Differs[string] `yaml:"frontend" default:"http://localhost:5173" comment:"Browser origin allowed for CORS" validate:"required"`
	API      Differs[string] `yaml:"api" default:"http://localhost:8081" comment:"Public URL of this API" validate:"required"`
}

// A rate limit bucket: Requests per Time seconds for a route class.
type Bucket struct {
	Requests int `yaml:"requests" validate:"required"`
	Time     int `yaml:"time" comment:"Window length in seconds" validate:"required"`
}

type RateLimits struct {
	Vanity Bucket `yaml:"vanity" comment:"Per-client vanity check limit (suggested: 5 per 5s)" validate:"required"`
	Users  Bucket `yaml:"users" comment:"Per-client user lookup limit (suggested: 10 per 60s)" validate:"required"`
	Global Bucket `yaml:"global" comment:"Per-client limit across all API routes (suggested: 30 per 60s)" validate:"required"`
}

type Meta struct {
	RedisURL        string          `yaml:"redis_url" default:"redis://localhost:6379" comment:"Redis URL. Leave empty to keep caches and rate limits in process memory"`
	Port            Differs[string] `yaml:"port" default:":8081" comment:"Port to run the server on" validate:"required"`
	SentryDSN       string          `yaml:"sentry_dsn" default:"" comment:"Sentry DSN, error reporting is disabled when empty"`
	UpstreamTimeout int             `yaml:"upstream_timeout" default:"10" comment:"Upstream request timeout in seconds" validate:"required"`
	PaceInterval    int             `yaml:"pace_interval" default:"2" comment:"Minimum seconds between our own successive upstream calls" validate:"required"`
	VanityCacheTTL  int             `yaml:"vanity_cache_ttl" default:"60" comment:"Vanity lookup cache TTL in seconds. Applies to both taken and available results" validate:"required"`
	UserCacheTTL    int             `yaml:"user_cache_ttl" default:"1800" comment:"User lookup cache TTL in seconds" validate:"required"`
	CacheMaxEntries int             `yaml:"cache_max_entries" default:"1000" comment:"In-memory cache size cap before oldest-first eviction" validate:"required"`
	ProbeInvite     string          `yaml:"probe_invite" default:"discord-developers" comment:"Known-good invite code used by the detailed health probe" validate:"required"`
}
