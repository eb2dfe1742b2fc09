package service

import (
	"context"

	"github.com/psds-microservice/docstore-service/internal/elasticsearch"
	"go.uber.org/zap"
)

// DocumentServicer — интерфейс для HTTP-обработчиков и Kafka-воркера
// (Dependency Inversion).
type DocumentServicer interface {
	CreateDocument(ctx context.Context, in *CreateDocumentInput) (string, error)
	GetDocument(ctx context.Context, collection, docType, id string) (elasticsearch.Document, bool, error)
	UpdateDocument(ctx context.Context, collection, docType, id string, fields elasticsearch.Document) bool
	DeleteDocument(ctx context.Context, collection, docType, id string) error
	ListDocuments(ctx context.Context, collection, docType string) ([]elasticsearch.Document, error)
	SearchDocuments(ctx context.Context, collection, docType, field, query string) ([]elasticsearch.Document, error)
	DropCollection(ctx context.Context, collection string) (bool, error)
	Flush(ctx context.Context, collection string) error
}

// CreateDocumentInput carries a new document for indexing. The id is
// assigned by the store, never by the caller.
type CreateDocumentInput struct {
	Collection string                 `json:"collection"`
	Type       string                 `json:"type,omitempty"`
	Fields     elasticsearch.Document `json:"fields"`
}

// DocumentService exposes the simplified CRUD+search contract of the
// document store to the HTTP API and the Kafka worker.
type DocumentService struct {
	store  elasticsearch.DocumentStorer
	logger *zap.Logger
}

var _ DocumentServicer = (*DocumentService)(nil)

// NewDocumentService dials the Elasticsearch cluster at host:port and
// fails if it is unreachable.
func NewDocumentService(ctx context.Context, host, port string, logger *zap.Logger) (*DocumentService, error) {
	store, err := elasticsearch.Establish(ctx, host, port, logger)
	if err != nil {
		return nil, err
	}
	return NewDocumentServiceWithStore(store, logger), nil
}

// NewDocumentServiceWithStore builds DocumentService with a given
// DocumentStorer (e.g. for tests).
func NewDocumentServiceWithStore(store elasticsearch.DocumentStorer, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{store: store, logger: logger}
}

func (s *DocumentService) CreateDocument(ctx context.Context, in *CreateDocumentInput) (string, error) {
	id, err := s.store.CreateDocument(ctx, in.Collection, in.Type, in.Fields)
	if err != nil {
		return "", err
	}
	s.logger.Info("document created",
		zap.String("collection", in.Collection),
		zap.String("id", id))
	return id, nil
}

func (s *DocumentService) GetDocument(ctx context.Context, collection, docType, id string) (elasticsearch.Document, bool, error) {
	return s.store.GetByID(ctx, collection, docType, id)
}

func (s *DocumentService) UpdateDocument(ctx context.Context, collection, docType, id string, fields elasticsearch.Document) bool {
	return s.store.UpdateDocument(ctx, collection, docType, id, fields)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, collection, docType, id string) error {
	return s.store.DeleteDocument(ctx, collection, docType, id)
}

func (s *DocumentService) ListDocuments(ctx context.Context, collection, docType string) ([]elasticsearch.Document, error) {
	return s.store.GetAll(ctx, collection, docType)
}

func (s *DocumentService) SearchDocuments(ctx context.Context, collection, docType, field, query string) ([]elasticsearch.Document, error) {
	return s.store.SearchByField(ctx, collection, docType, field, query)
}

func (s *DocumentService) DropCollection(ctx context.Context, collection string) (bool, error) {
	ok, err := s.store.DeleteCollection(ctx, collection)
	if err != nil {
		return false, err
	}
	s.logger.Info("collection dropped", zap.String("collection", collection))
	return ok, nil
}

// Flush forces all prior writes to the collection to become visible.
// Mutating operations already flush on their own; this is for callers
// that batch writes elsewhere and want a single commit point.
func (s *DocumentService) Flush(ctx context.Context, collection string) error {
	return s.store.Refresh(ctx, collection)
}

// Close releases the underlying store handle.
func (s *DocumentService) Close() {
	s.store.Close()
}
