package kafka

import (
	"context"
	"encoding/json"

	"github.com/psds-microservice/docstore-service/internal/elasticsearch"
	"github.com/psds-microservice/docstore-service/internal/service"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DocumentEvent — событие документа из топика docstore.document.*
type DocumentEvent struct {
	Event      string                 `json:"event"`
	Collection string                 `json:"collection"`
	Type       string                 `json:"type,omitempty"`
	ID         string                 `json:"id,omitempty"`
	Fields     elasticsearch.Document `json:"fields,omitempty"`
}

// HandleDocument обрабатывает сообщение из топика документов: created
// индексирует новый документ, updated применяет частичное обновление,
// deleted удаляет по id.
func HandleDocument(ctx context.Context, msg kafka.Message, docSvc service.DocumentServicer, logger *zap.Logger) {
	log := logger.With(zap.String("topic", msg.Topic))

	var ev DocumentEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		log.Error("unmarshal document event", zap.Error(err))
		return
	}
	if ev.Collection == "" {
		log.Warn("document event missing collection, skipping")
		return
	}

	switch ev.Event {
	case "document.created":
		if len(ev.Fields) == 0 {
			log.Warn("document.created without fields, skipping",
				zap.String("collection", ev.Collection))
			return
		}
		id, err := docSvc.CreateDocument(ctx, &service.CreateDocumentInput{
			Collection: ev.Collection,
			Type:       ev.Type,
			Fields:     ev.Fields,
		})
		if err != nil {
			log.Error("index document", zap.String("collection", ev.Collection), zap.Error(err))
			return
		}
		log.Info("indexed document", zap.String("collection", ev.Collection), zap.String("id", id))

	case "document.updated":
		if ev.ID == "" || len(ev.Fields) == 0 {
			log.Warn("document.updated missing id or fields, skipping",
				zap.String("collection", ev.Collection))
			return
		}
		if ok := docSvc.UpdateDocument(ctx, ev.Collection, ev.Type, ev.ID, ev.Fields); !ok {
			log.Warn("update document failed",
				zap.String("collection", ev.Collection),
				zap.String("id", ev.ID))
			return
		}
		log.Info("updated document", zap.String("collection", ev.Collection), zap.String("id", ev.ID))

	case "document.deleted":
		if ev.ID == "" {
			log.Warn("document.deleted missing id, skipping",
				zap.String("collection", ev.Collection))
			return
		}
		if err := docSvc.DeleteDocument(ctx, ev.Collection, ev.Type, ev.ID); err != nil {
			log.Error("delete document",
				zap.String("collection", ev.Collection),
				zap.String("id", ev.ID),
				zap.Error(err))
			return
		}
		log.Info("deleted document", zap.String("collection", ev.Collection), zap.String("id", ev.ID))

	default:
		log.Warn("unknown document event, skipping", zap.String("event", ev.Event))
	}
}
