package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/finbook/bookkeeper/internal/auth"
	"github.com/finbook/bookkeeper/internal/config"
	"github.com/finbook/bookkeeper/internal/handlers"
	"github.com/finbook/bookkeeper/internal/repository"
	"github.com/finbook/bookkeeper/internal/services"
	xhttp "github.com/finbook/bookkeeper/pkg/http"
	"github.com/finbook/bookkeeper/pkg/logger"
	"github.com/finbook/bookkeeper/pkg/pg"
	"github.com/finbook/bookkeeper/pkg/prom"
	"github.com/finbook/bookkeeper/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport
	s := xhttp.CreateServer()
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestIDMiddleware)
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(requestDurationMiddleware)
	s.Use(xhttp.RecoverMiddleware)

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	// the summary cache degrades to the database when redis is absent
	var summaryCache *services.SummaryCache
	if addr := config.Get().RedisAddr; addr != "" {
		redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
			Addrs:      []string{addr},
			ClientName: "default",
			DB:         config.Get().RedisDatabase,
			Username:   config.Get().RedisUsername,
			Password:   config.Get().RedisPassword,
		})
		if err != nil {
			logger.Error("failed connecting to redis", "error", err)
			return
		}
		summaryCache = services.NewSummaryCache(redisAdap, config.Get().SummaryCacheTTL)
	}

	if ns := config.Get().PromNamespace; ns != "" {
		host, _ := os.Hostname()
		if err := prom.Create(host, config.Get().AppEnv, ns); err != nil {
			logger.Error("failed creating metrics", "error", err)
			return
		}
		if addr := config.Get().AppDebugMetricsAddr; addr != "" {
			go prom.ListenAndServer(addr, config.Get().AppDebugMetricsURI)
		}
	}

	tokens := auth.NewTokenManager(
		config.Get().JWTSecret,
		config.Get().JWTAccessTTL,
		config.Get().JWTRefreshTTL,
	)

	customerRepo := repository.NewCustomerRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	userRepo := repository.NewUserRepository(db)

	// services
	customerService := services.NewCustomerService(customerRepo, summaryCache)
	ledgerService := services.NewLedgerService(entryRepo, customerRepo, summaryCache)
	authService := services.NewAuthService(userRepo, tokens)
	healthService := services.NewHealthService(db)

	// v1 handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	entryHandler := handlers.NewEntryHandler(ledgerService)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(healthService)

	s.Use(auth.Middleware(tokens, "/api/v1/auth/", "/health"))

	g := s.Router.Group("/api/v1")
	handlers.RegisterCustomerRoutes(g, customerHandler)
	handlers.RegisterEntryRoutes(g, entryHandler)
	handlers.RegisterAuthRoutes(g, authHandler)
	handlers.RegisterHealthRoutes(s.Router, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting api", "version", version, "commit", commit, "built", date)
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

func requestDurationMiddleware(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		prom.ObserveRequestDuration(time.Since(start).Seconds(), string(ctx.Method()), string(ctx.Path()))
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
