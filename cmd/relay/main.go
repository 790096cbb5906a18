package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/Totarae/URLRelay/internal/config"
	grpcv2 "github.com/Totarae/URLRelay/internal/grpc/v2"
	"github.com/Totarae/URLRelay/internal/handlers"
	"github.com/Totarae/URLRelay/internal/provider"
	"github.com/Totarae/URLRelay/internal/relay"
	"github.com/Totarae/URLRelay/internal/router"
)

func main() {
	// Инициализация конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer logger.Sync()

	if cfg.Credential() == "" {
		logger.Warn("BITLY_TOKEN не задан, запросы на сокращение будут отклонены")
	}

	client := provider.NewHTTPClient(cfg.ProviderURL, cfg.ProviderDomain, cfg.ProviderTimeout, logger)
	svc := relay.NewService(client, cfg.Credential, logger)
	handler := handlers.NewHandler(svc, logger)

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router.NewRouter(handler, logger),
	}

	var g errgroup.Group
	g.Go(func() error {
		logger.Info("Сервер запущен", zap.String("address", cfg.ServerAddress), zap.Bool("https", cfg.EnableHTTPS))
		var runErr error
		if cfg.EnableHTTPS {
			runErr = srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
		} else {
			runErr = srv.ListenAndServe()
		}
		if errors.Is(runErr, http.ErrServerClosed) {
			return nil
		}
		return runErr
	})

	ops := map[string]gfshutdown.Operation{
		"http": func(ctx context.Context) error {
			logger.Info("Остановка HTTP-сервера")
			return srv.Shutdown(ctx)
		},
	}

	if cfg.GRPCAddress != "" {
		lis, lisErr := net.Listen("tcp", cfg.GRPCAddress)
		if lisErr != nil {
			logger.Fatal("Ошибка при запуске gRPC: ", zap.Error(lisErr))
		}
		grpcSrv := grpc.NewServer(grpc.UnaryInterceptor(grpcv2.LoggingInterceptor(logger)))
		grpcv2.Register(grpcSrv, grpcv2.NewGRPCServer(svc))

		g.Go(func() error {
			logger.Info("gRPC-сервер запущен", zap.String("address", cfg.GRPCAddress))
			return grpcSrv.Serve(lis)
		})
		ops["grpc"] = func(ctx context.Context) error {
			logger.Info("Остановка gRPC-сервера")
			stopped := make(chan struct{})
			go func() {
				grpcSrv.GracefulStop()
				close(stopped)
			}()
			select {
			case <-stopped:
				return nil
			case <-ctx.Done():
				grpcSrv.Stop()
				return ctx.Err()
			}
		}
	}

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, ops)

	serveErr := make(chan error, 1)
	go func() { serveErr <- g.Wait() }()

	select {
	case code := <-wait:
		if code != 0 {
			logger.Fatal("Сервер остановлен с ошибкой", zap.Int("code", code))
		}
		logger.Info("Сервер остановлен")
	case runErr := <-serveErr:
		if runErr != nil {
			logger.Fatal("Ошибка при запуске сервера: ", zap.Error(runErr))
		}
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	if lvl.Level() == zap.DebugLevel {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = lvl
	return zcfg.Build()
}
