package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-course-payments/internal/config"
	"github.com/ariefcatur/go-course-payments/internal/httpx"
	kafkax "github.com/ariefcatur/go-course-payments/internal/kafka"
	"github.com/ariefcatur/go-course-payments/internal/ledger"
	"github.com/ariefcatur/go-course-payments/internal/mailer"
	"github.com/ariefcatur/go-course-payments/internal/payments"
	"github.com/ariefcatur/go-course-payments/internal/postgres"
	"github.com/ariefcatur/go-course-payments/internal/razorpay"
	"github.com/ariefcatur/go-course-payments/internal/redisx"
	"github.com/ariefcatur/go-course-payments/internal/sheet"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	links, err := payments.LoadLinks(cfg.LinksFile)
	if err != nil {
		logger.Error("load download links", "file", cfg.LinksFile, "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initiator := &payments.Initiator{
		Gateway:  razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL),
		Currency: cfg.Currency,
		Strict:   cfg.StrictCourseCheck,
		Links:    links,
		Logger:   logger,
	}
	pipeline := &payments.Pipeline{
		Secret: cfg.RazorpayKeySecret,
		Ledger: sheet.NewSink(cfg.SheetURL),
		Links:  links,
		Mail: mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.MailUser,
			Pass: cfg.MailPass,
		}),
		FromName: cfg.MailFromName,
		From:     cfg.MailUser,
		Logger:   logger,
	}
	oh := &httpx.OrdersHandler{Initiator: initiator, Pipeline: pipeline, Logger: logger}

	// Redis (optional): order status cache
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		if err := redisx.Ping(ctx, rdb); err != nil {
			logger.Error("redis", "addr", cfg.RedisAddr, "err", err)
			os.Exit(1)
		}
		cache := redisx.NewStatusCache(rdb)
		initiator.Status = cache
		pipeline.Status = cache
		oh.Cache = cache
	}

	// Postgres (optional): read side of the ledger mirror
	if cfg.PostgresDSN != "" {
		db, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Error("db connect", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		oh.Repo = &ledger.Repo{DB: db}
	}

	// Kafka (optional): payment.captured events
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, payments.TopicPaymentCaptured, 1024)
		prod.Start(ctx)
		pipeline.Events = &kafkax.CapturedPublisher{Producer: prod, Service: cfg.ServiceName}
	}

	router := httpx.NewRouter(cfg.AllowedOrigin)
	oh.Register(router)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr, "origin", cfg.AllowedOrigin,
			"redis", cfg.RedisAddr != "", "postgres", cfg.PostgresDSN != "", "kafka", prod != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	sctx, scancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Error("http shutdown", "err", err)
	}
	// handlers still running past the shutdown deadline get ErrProducerClosed
	if prod != nil {
		prod.Close()
		prod.WaitClosed()
	}
}
