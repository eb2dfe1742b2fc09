package kafka

import (
	"context"
	"strings"
	"time"

	"github.com/psds-microservice/docstore-service/internal/service"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// documentTopicPrefix routes docstore.document.* topics to the document
// handler; anything else is skipped.
const documentTopicPrefix = "docstore.document."

// RunConsumer запускает Kafka consumer: читает сообщения и применяет
// события документов к хранилищу (upsert/delete).
func RunConsumer(ctx context.Context, brokers []string, groupID string, topics []string, docSvc service.DocumentServicer, logger *zap.Logger) {
	if len(brokers) == 0 || len(topics) == 0 {
		logger.Warn("kafka: brokers or topics empty, consumer not started")
		return
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		GroupTopics:    topics,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        time.Second,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})
	defer r.Close()

	logger.Info("kafka consumer started",
		zap.String("group", groupID),
		zap.Strings("topics", topics))

	for {
		select {
		case <-ctx.Done():
			logger.Info("kafka consumer stopping")
			return
		default:
		}

		msg, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		if err := r.CommitMessages(ctx, msg); err != nil {
			logger.Error("kafka commit message", zap.Error(err))
		}

		if strings.HasPrefix(msg.Topic, documentTopicPrefix) {
			HandleDocument(ctx, msg, docSvc, logger)
		} else {
			logger.Warn("kafka: unknown topic, skipping", zap.String("topic", msg.Topic))
		}
	}
}
