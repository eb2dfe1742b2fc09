package elasticsearch

import "context"

// DocumentStorer abstracts the document store operations for testing and
// swapping implementations.
type DocumentStorer interface {
	CreateDocument(ctx context.Context, collection, docType string, doc Document) (string, error)
	GetByID(ctx context.Context, collection, docType, id string) (Document, bool, error)
	UpdateDocument(ctx context.Context, collection, docType, id string, fields Document) bool
	GetAll(ctx context.Context, collection, docType string) ([]Document, error)
	SearchByField(ctx context.Context, collection, docType, field, query string) ([]Document, error)
	DeleteDocument(ctx context.Context, collection, docType, id string) error
	DeleteCollection(ctx context.Context, collection string) (bool, error)
	Refresh(ctx context.Context, collection string) error
	Close()
}

// Ensure *Store implements DocumentStorer at compile time.
var _ DocumentStorer = (*Store)(nil)
