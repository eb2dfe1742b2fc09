package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/psds-microservice/docstore-service/internal/config"
	"github.com/psds-microservice/docstore-service/internal/handler"
	"github.com/psds-microservice/docstore-service/internal/router"
	"github.com/psds-microservice/docstore-service/internal/service"
	"go.uber.org/zap"
)

// API приложение: HTTP сервер (режим api).
type API struct {
	cfg     *config.Config
	httpSrv *http.Server
	docSvc  *service.DocumentService
	logger  *zap.Logger
}

// NewAPI создаёт приложение для режима api.
func NewAPI(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	docSvc, err := service.NewDocumentService(ctx, cfg.Elasticsearch.Host, cfg.Elasticsearch.Port, logger)
	if err != nil {
		return nil, fmt.Errorf("document service: %w", err)
	}

	docHandler := handler.NewDocumentHandler(docSvc)

	httpAddr := cfg.AppHost + ":" + cfg.HTTPPort
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           router.New(docHandler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{
		cfg:     cfg,
		httpSrv: httpSrv,
		docSvc:  docSvc,
		logger:  logger,
	}, nil
}

// Run запускает HTTP сервер, блокируется до отмены ctx.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	a.logger.Info("HTTP server listening", zap.String("addr", a.httpSrv.Addr))
	a.logger.Info("endpoints",
		zap.String("swagger", base+"/swagger"),
		zap.String("health", base+"/health"),
		zap.String("ready", base+"/ready"),
		zap.String("collections", base+"/collections/{collection}/documents"))

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	a.docSvc.Close()
	return nil
}
