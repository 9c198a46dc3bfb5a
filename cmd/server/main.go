package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wixxxxxx/mini-etf/internal/api"
	app "github.com/Wixxxxxx/mini-etf/internal/app/engine"
	"github.com/Wixxxxxx/mini-etf/internal/app/feed"
	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
	"github.com/Wixxxxxx/mini-etf/internal/usecase/registry"
	"github.com/Wixxxxxx/mini-etf/internal/usecase/tradefeed"
	"github.com/Wixxxxxx/mini-etf/pkg/config"
	"github.com/Wixxxxxx/mini-etf/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.LogLevel)))
	if err != nil {
		panic(err)
	}
	log = l
}

func main() {
	defer func() { _ = log.Sync() }()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	tradeHub := feed.NewHub[orderbookv1.Trade]()

	opts := []app.Option{app.WithTradeHub(tradeHub)}
	var publisher *tradefeed.Publisher
	if cfg.KafkaConfig.FeedEnabled() {
		publisher = tradefeed.NewPublisher(cfg.KafkaConfig, log)
		opts = append(opts, app.WithPublisher(publisher))
		log.Info("trade feed enabled",
			logger.Field{Key: "topic", Value: cfg.KafkaConfig.Topic},
			logger.Field{Key: "brokers", Value: cfg.KafkaConfig.Brokers},
		)
	}

	reg := registry.NewRegistry()
	engine := app.NewEngine(reg, log, opts...)
	server := api.NewServer(engine, tradeHub, log)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Router(),
	}

	go func() {
		log.Info("clob gateway listening", logger.Field{Key: "addr", Value: cfg.HTTPAddr})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err, logger.Field{Key: "action", Value: "listen_and_serve"})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("received shutdown signal", logger.Field{Key: "signal", Value: sig.String()})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "shutdown_http"})
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "close_trade_publisher"})
		}
	}

	log.Info("shutdown complete")
}
