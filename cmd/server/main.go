package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/freshcart/internal/cache"
	"github.com/Skotchmaster/freshcart/internal/config"
	"github.com/Skotchmaster/freshcart/internal/db"
	"github.com/Skotchmaster/freshcart/internal/es"
	"github.com/Skotchmaster/freshcart/internal/jobs"
	"github.com/Skotchmaster/freshcart/internal/logging"
	"github.com/Skotchmaster/freshcart/internal/metrics"
	"github.com/Skotchmaster/freshcart/internal/mykafka"
	"github.com/Skotchmaster/freshcart/internal/repo"
	"github.com/Skotchmaster/freshcart/internal/service"
	httpserver "github.com/Skotchmaster/freshcart/internal/transport/http"
	"github.com/Skotchmaster/freshcart/internal/upload"
)

func main() {
	cfg := config.Load()
	config.MustHave(map[string]string{
		"DATABASE_URL":       cfg.DatabaseURL,
		"JWT_SECRET":         string(cfg.JWTAccessSecret),
		"JWT_REFRESH_SECRET": string(cfg.JWTRefreshSecret),
	})

	decimal.MarshalJSONWithoutQuotes = true

	logger := logging.New(cfg.ServiceName, cfg.LogLevel)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	gdb, err := db.Open(openCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(gdb); err != nil {
			log.Fatalf("db migrate: %v", err)
		}
	}

	r := repo.New(gdb)
	m := metrics.New(cfg.ServiceName)

	var events service.Publisher
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		if err := producer.EnsureTopics(service.TopicUserEvents, service.TopicProductEvents, service.TopicOrderEvents); err != nil {
			logger.Warn("kafka_topics_error", "error", err)
		}
		events = producer
	} else {
		logger.Info("kafka_disabled")
	}

	var index service.ProductIndex
	if cfg.ESURL != "" {
		client, err := es.NewClient(ctx, cfg)
		if err != nil {
			logger.Warn("es_unavailable", "error", err)
		} else {
			pi := &es.ProductIndex{Client: client, Index: cfg.ESIndex}
			if err := pi.EnsureIndex(ctx); err != nil {
				logger.Warn("es_index_error", "index", cfg.ESIndex, "error", err)
			}
			index = pi
		}
	}

	var categories service.CategoryCache
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn("redis_unavailable", "error", err)
		} else {
			defer rdb.Close()
			categories = cache.NewCategories(rdb, cfg.CategoryCacheTTL)
		}
	}

	authSvc := &service.AuthService{
		Repo:          r,
		Events:        events,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	}
	userSvc := &service.UserService{Repo: r, Events: events}
	catalogSvc := &service.CatalogService{Repo: r, Events: events, Index: index, Cache: categories}
	orderSvc := &service.OrderService{
		Repo:   r,
		Events: events,
		Pricing: service.Pricing{
			DeliveryFee:           cfg.DeliveryFee,
			FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
		},
	}
	uploads := upload.NewStore(cfg.UploadDir, cfg.MaxUploadMB)

	e := httpserver.New(&httpserver.Deps{
		DB:             gdb,
		Logger:         logger,
		Metrics:        m,
		JWTSecret:      cfg.JWTAccessSecret,
		Users:          userSvc,
		UploadDir:      cfg.UploadDir,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,

		AuthHandler:         &httpserver.AuthHTTP{Svc: authSvc},
		UserHandler:         &httpserver.UserHTTP{Svc: userSvc, Uploads: uploads},
		AddressHandler:      &httpserver.AddressHTTP{Svc: &service.AddressService{Repo: r}},
		CatalogHandler:      &httpserver.CatalogHTTP{Svc: catalogSvc, Uploads: uploads},
		OrderHandler:        &httpserver.OrderHTTP{Svc: orderSvc},
		TransactionHandler:  &httpserver.TransactionHTTP{Svc: &service.TransactionService{Repo: r}},
		NotificationHandler: &httpserver.NotificationHTTP{Svc: &service.NotificationService{Repo: r}},
	})

	scheduler := jobs.NewScheduler(logger, m)
	if err := scheduler.Add(jobs.PurgeTokensSpec, "purge_tokens", jobs.PurgeTokens(authSvc)); err != nil {
		log.Fatalf("jobs: %v", err)
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_error", "error", err)
	}
	scheduler.Stop(shutdownCtx)
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka_close_error", "error", err)
		}
	}
	if err := db.Close(gdb); err != nil {
		logger.Warn("db_close_error", "error", err)
	}

	logger.Info("server_stopped")
}
