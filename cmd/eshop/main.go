package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"eshop/internal/config"
	"eshop/internal/notify"
	"eshop/internal/observability/logging"
	"eshop/internal/observability/metrics"
	impl "eshop/internal/service/impl"
	"eshop/internal/store"
	httpx "eshop/internal/transport/http"
	"eshop/pkg/db"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: "eshop",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)

	logger.Info("starting service")

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}
	st := store.New(gdb)

	mailer, err := impl.NewMailer(cfg.SMTP)
	if err != nil {
		logger.Error("mailer setup", "error", err)
		os.Exit(1)
	}
	notifier := notify.NewNotifier(mailer, cfg.AdminAlertEmail)

	tokens := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:        cfg.Issuer,
		SigningKey:    []byte(cfg.SigningKey),
		ActivationTTL: cfg.ActivationTTL,
		AccessTTL:     cfg.AccessTTL,
	})
	users := impl.NewUserServiceImpl(st, tokens, mailer, notifier, cfg.PublicBaseURL)
	orders := impl.NewOrderServiceImpl(st, notifier)

	metrics.MustRegister()

	router := httpx.NewRouter(httpx.RouterConfig{
		FrontendDomain: cfg.FrontendDomain,
		CORSOrigins:    cfg.CORSOrigins,
	}, users, orders, tokens)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("eshop listening", "addr", srv.Addr, "frontend", cfg.FrontendDomain)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
