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

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/pos_shop/internal/config"
	"github.com/Skotchmaster/pos_shop/internal/es"
	"github.com/Skotchmaster/pos_shop/internal/handlers"
	"github.com/Skotchmaster/pos_shop/internal/handlers/cart"
	"github.com/Skotchmaster/pos_shop/internal/images"
	"github.com/Skotchmaster/pos_shop/internal/ledger"
	"github.com/Skotchmaster/pos_shop/internal/logging"
	"github.com/Skotchmaster/pos_shop/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/pos_shop/internal/middleware/logging"
	"github.com/Skotchmaster/pos_shop/internal/mykafka"
	"github.com/Skotchmaster/pos_shop/internal/repo"
	"github.com/Skotchmaster/pos_shop/internal/service"
	"github.com/Skotchmaster/pos_shop/internal/service/search"
	httpserver "github.com/Skotchmaster/pos_shop/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")

	logger := logging.New(cfg.LogLevel, cfg.LogFile).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx := context.Background()

	store, err := repo.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open catalog: %v", err)
	}

	var events mykafka.Publisher = mykafka.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		events = mykafka.NewProducer(cfg.KafkaBrokers)
	}

	catalog := &service.CatalogService{
		Repo:   store,
		Images: images.NewStore(cfg.UploadDir),
		Events: events,
	}

	esClient, err := es.NewClient(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if esClient != nil {
		catalog.Index = &search.ESIndex{Client: esClient, Index: cfg.ES_INDEX}
		if err := catalog.Reindex(ctx); err != nil {
			logger.Warn("search_reindex_error", "error", err)
		}
	}

	l := ledger.New(cfg.PaymentsFile, cfg.TransactionsFile)

	if err := os.MkdirAll(cfg.SessionDir, 0o700); err != nil {
		log.Fatalf("create session dir: %v", err)
	}
	sessionStore := sessions.NewFilesystemStore(cfg.SessionDir, cfg.SessionSecret)
	sessionStore.MaxLength(1 << 20)
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = handlers.NewRenderer()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		loggingmw.RequestLogger(logger),
		middleware.BodyLimit("16M"),
		session.Middleware(sessionStore),
	)
	if cfg.CSRFEnabled {
		e.Use(csrf.Middleware(csrf.Config{SkipPaths: []string{"/health/live", "/health/ready"}}))
	}

	deps := httpserver.Deps{
		ProductHandler: &handlers.ProductHandler{Catalog: catalog},
		CartHandler:    &cart.CartHandler{},
		PaymentHandler: &handlers.PaymentHandler{Checkout: &service.CheckoutService{
			Ledger:  l,
			Catalog: catalog,
			Events:  events,
			Strict:  cfg.StrictCheckout,
		}},
		SalesHandler: &handlers.SalesHandler{Sales: &service.SalesService{Ledger: l}},
		UploadDir:    cfg.UploadDir,
		Ready: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_, err := store.LoadAll(ctx)
			return err
		},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "catalog_driver", cfg.CatalogDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	go func() {
		<-quit
		logger.Warn("force exit")
		os.Exit(1)
	}()

	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := store.Close(); err != nil {
		logger.Error("catalog close error", "error", err)
	}

	if err := events.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
