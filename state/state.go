// Package state holds the shared process state: config, logger, the
// upstream client, caches and the rate limiter. Setup panics on any
// configuration error; the service must not start half-wired.
package state

import (
	"context"
	"os"
	"time"

	"vanitycheck/cache"
	"vanitycheck/config"
	"vanitycheck/discord"
	"vanitycheck/ratelimit"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/infinitybotlist/eureka/genconfig"
	"github.com/infinitybotlist/eureka/snippets"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	Redis     *redis.Client
	Logger    *zap.SugaredLogger
	Context   = context.Background()
	Validator = validator.New()

	Config  *config.Config
	Discord *discord.Client

	VanityCache cache.Cache
	UserCache   cache.Cache
	Ratelimiter ratelimit.Limiter

	SentryEnabled bool

	StartedAt time.Time
)

func Setup() {
	Logger = snippets.CreateZap().Sugar()

	Validator.RegisterValidation("notblank", validators.NotBlank)
	Validator.RegisterValidation("nospaces", snippets.ValidatorNoSpaces)
	Validator.RegisterValidation("https", snippets.ValidatorIsHttps)
	Validator.RegisterValidation("httporhttps", snippets.ValidatorIsHttpOrHttps)

	genconfig.GenConfig(config.Config{})

	cfg, err := os.ReadFile("config.yaml")

	if err != nil {
		panic(err)
	}

	err = yaml.Unmarshal(cfg, &Config)

	if err != nil {
		panic(err)
	}

	err = Validator.Struct(Config)

	if err != nil {
		panic("configError: " + err.Error())
	}

	if Config.Meta.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn: Config.Meta.SentryDSN,
		})

		if err != nil {
			panic(err)
		}

		SentryEnabled = true
	}

	// With a redis URL, caches and rate limits are shared across
	// instances. Without one, everything stays in process memory
	// (single-instance mode).
	if Config.Meta.RedisURL != "" {
		rOptions, err := redis.ParseURL(Config.Meta.RedisURL)

		if err != nil {
			panic(err)
		}

		Redis = redis.NewClient(rOptions)

		VanityCache = cache.NewRedis(Redis, Logger)
		UserCache = cache.NewRedis(Redis, Logger)
		Ratelimiter = ratelimit.NewRedis(Redis, Logger)
	} else {
		VanityCache = cache.NewMemory(Config.Meta.CacheMaxEntries)
		UserCache = cache.NewMemory(Config.Meta.CacheMaxEntries)
		Ratelimiter = ratelimit.NewMemory()
	}

	Discord, err = discord.New(discord.Options{
		Token:     Config.DiscordAuth.Token,
		BaseURL:   Config.DiscordAuth.APIUrl,
		UserAgent: Config.DiscordAuth.UserAgent,
		Timeout:   time.Duration(Config.Meta.UpstreamTimeout) * time.Second,
		Pace:      time.Duration(Config.Meta.PaceInterval) * time.Second,
		Logger:    Logger,
	})

	if err != nil {
		panic("configError: " + err.Error())
	}

	Logger.Info("Using bot token ", Discord.MaskedToken())

	StartedAt = time.Now()
}
