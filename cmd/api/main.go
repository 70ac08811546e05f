package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/PabloPavan/snipmark_api/docs"
	"github.com/PabloPavan/snipmark_api/internal"
	"github.com/PabloPavan/snipmark_api/internal/db"
	"github.com/PabloPavan/snipmark_api/internal/httpapi"
	"github.com/PabloPavan/snipmark_api/internal/ratelimit"
	"github.com/PabloPavan/snipmark_api/internal/snippets"
	"github.com/PabloPavan/snipmark_api/internal/telemetry"
	"github.com/PabloPavan/snipmark_api/internal/userdata"
)

const serviceName = "snipmark-api"

func main() {
	port := internal.Env("APP_PORT", "8080")
	databaseURL := internal.Env("DATABASE_URL", "")
	redisURL := internal.Env("REDIS_URL", "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, initFn := range []func(context.Context, string) (telemetry.ShutdownFunc, error){
		telemetry.InitTracer,
		telemetry.InitMetrics,
		telemetry.InitLogger,
	} {
		shutdown, err := initFn(ctx, serviceName)
		if err != nil {
			log.Fatalf("telemetry init error: %v", err)
		}
		defer shutdown(context.Background())
	}
	db.InitTelemetry(serviceName)

	svc := &snippets.Service{
		CacheTTL:     internal.EnvDuration("SNIPPETS_CACHE_TTL", 2*time.Minute),
		ListCacheTTL: internal.EnvDuration("SNIPPETS_LIST_CACHE_TTL", 30*time.Second),
		TagsCacheTTL: internal.EnvDuration("TAGS_CACHE_TTL", time.Minute),
	}
	health := &httpapi.HealthHandler{}

	if databaseURL != "" {
		d, err := db.New(ctx, databaseURL, db.DefaultPoolConfig())
		if err != nil {
			log.Fatalf("db connect error: %v", err)
		}
		defer d.Close()

		base := db.NewBase(d.Pool, internal.EnvDuration("DB_QUERY_TIMEOUT", 3*time.Second))
		svc.Store = snippets.NewRepository(base)
		svc.UserData = userdata.NewRepository(base)
		health.DB = base.Ping
	} else {
		log.Printf("DATABASE_URL not set, using in-memory store")
		svc.Store = snippets.NewMemoryStore()
		svc.UserData = userdata.NewMemoryStore()
	}

	var limiter httpapi.RateLimiter
	if redisURL != "" {
		redisOpt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("redis url error: %v", err)
		}
		redisClient := redis.NewClient(redisOpt)
		defer redisClient.Close()

		svc.Cache = snippets.NewRedisCache(redisClient, internal.Env("CACHE_REDIS_PREFIX", "snipmark:cache:"))
		limiter = &ratelimit.Limiter{
			Client: redisClient,
			Prefix: internal.Env("RATELIMIT_REDIS_PREFIX", "snipmark:ratelimit:"),
			Limit:  internal.EnvInt("SEARCH_RATE_LIMIT", ratelimit.DefaultLimit),
			Window: internal.EnvDuration("SEARCH_RATE_WINDOW", ratelimit.DefaultWindow),
		}
		health.Cache = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	app := &httpapi.App{
		ServiceName:    serviceName,
		IdentityHeader: internal.Env("IDENTITY_HEADER", httpapi.DefaultIdentityHeader),
		SearchLimiter:  limiter,
		Health:         health,
		Public:         &httpapi.PublicHandler{Service: svc},
		Personal:       &httpapi.PersonalHandler{Service: svc},
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	telemetry.LogInfo(ctx, "api listening", telemetry.LogString("port", port))
	log.Printf("api listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
