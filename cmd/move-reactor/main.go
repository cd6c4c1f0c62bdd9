package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/chessreact/move-reactor/internal/builder"
	appcfg "github.com/chessreact/move-reactor/internal/config"
	"github.com/chessreact/move-reactor/internal/httpapi"
	"github.com/chessreact/move-reactor/internal/obslog"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer logger.Sync()

	deps, err := builder.New(cfg, logger)
	if err != nil {
		logger.Fatal("dependency init failed", zap.Error(err))
	}
	defer deps.Close()

	handler := httpapi.NewHandler(deps.Service, deps.EngineEnabled, logger)

	server := &fasthttp.Server{
		Handler:            handler.HandleFastHTTP,
		Name:               "move-reactor",
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       60 * time.Second,
		MaxRequestBodySize: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		errCh <- server.ListenAndServe(cfg.HTTPAddr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		if err := server.Shutdown(); err != nil {
			logger.Error("server shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}
}
