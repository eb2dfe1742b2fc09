package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/psds-microservice/docstore-service/internal/config"
	"github.com/psds-microservice/docstore-service/internal/kafka"
	"github.com/psds-microservice/docstore-service/internal/logger"
	"github.com/psds-microservice/docstore-service/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run Kafka consumer (apply document events to Elasticsearch). Deploy separately from api.",
	RunE:  runWorker,
}

func runWorker(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(cfg.KafkaBrokers) == 0 || len(cfg.KafkaTopics) == 0 {
		return fmt.Errorf("worker requires KAFKA_BROKERS and KAFKA_TOPICS")
	}

	log, err := logger.New(cfg.LogLevel, cfg.AppEnv())
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	docSvc, err := service.NewDocumentService(ctx, cfg.Elasticsearch.Host, cfg.Elasticsearch.Port, log)
	if err != nil {
		return fmt.Errorf("document service: %w", err)
	}
	defer docSvc.Close()

	log.Info("worker starting Kafka consumer",
		zap.String("group", cfg.KafkaGroupID),
		zap.Strings("topics", cfg.KafkaTopics))
	kafka.RunConsumer(ctx, cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.KafkaTopics, docSvc, log)
	log.Info("worker stopped")
	return nil
}
