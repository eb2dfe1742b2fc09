package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"
)

// Document is a flat field mapping stored in a collection. Values are
// strings or arrays of strings; nested objects, numbers and booleans are
// outside the data model and rejected at the API boundary.
type Document map[string]interface{}

// defaultDocType is the legacy type tag used when a caller does not
// supply one. Elasticsearch 7 accepts a single type per index and names
// it _doc by convention.
const defaultDocType = "_doc"

// searchSizeLimit caps unpaginated result sets at the default
// index.max_result_window.
const searchSizeLimit = 10000

var indexNameRe = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateIndexName checks the collection naming rule: lowercase
// alphanumerics and hyphens only. It runs before any write that could
// implicitly create the collection, so a bad name never reaches the wire.
func ValidateIndexName(name string) error {
	if !indexNameRe.MatchString(name) {
		return fmt.Errorf("%w: %q (allowed: ^[a-z0-9-]+$)", ErrInvalidIndexName, name)
	}
	return nil
}

// Store is a thin adapter over the Elasticsearch client for a single
// cluster. It owns the connection handle exclusively: one Store per
// handle, created by Establish and released by Close. The adapter adds
// no retries and no pooling of its own; transport concurrency is the
// client's business.
//
// Every mutating call refreshes the touched collection so that a read
// or search issued afterwards observes the write. Callers that batch
// writes without awaiting each one may still observe stale results;
// that is the documented trade-off, not a bug.
type Store struct {
	es     *elastic.Client
	url    string
	logger *zap.Logger
}

// Establish opens a client against http://host:port and verifies the
// cluster is alive with a ping. This is the only place connectivity is
// checked; there is no implicit retry. A failed probe yields an error
// whose message starts with "Cannot establish elasticsearch connection: "
// followed by the cause — that prefix is a contract.
func Establish(ctx context.Context, host, port string, logger *zap.Logger) (*Store, error) {
	if host == "" || port == "" {
		return nil, ErrInvalidArgument
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	url := "http://" + host + ":" + port
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
		// Healthcheck off: liveness is verified once by the ping below,
		// with the error surfaced to the caller instead of a background loop.
		elastic.SetHealthcheck(false),
		// Keeps int64 field values from losing precision on decode.
		elastic.SetDecoder(&elastic.NumberDecoder{}),
		elastic.SetErrorLog(newErrorLogger(logger)),
	)
	if err != nil {
		return nil, fmt.Errorf(connectErrPrefix+"%w", err)
	}

	if _, _, err := client.Ping(url).Do(ctx); err != nil {
		client.Stop()
		return nil, fmt.Errorf(connectErrPrefix+"%w", err)
	}

	return &Store{es: client, url: url, logger: logger}, nil
}

// CreateDocument indexes a new document and returns the id the store
// assigned to it. The collection name is validated first; the write asks
// for immediate visibility and the whole collection is refreshed so a
// read issued right after sees the document.
func (s *Store) CreateDocument(ctx context.Context, collection, docType string, doc Document) (string, error) {
	if err := ValidateIndexName(collection); err != nil {
		return "", err
	}
	resp, err := s.es.Index().
		Index(collection).
		Type(typeOrDefault(docType)).
		BodyJson(doc).
		Refresh("true").
		Do(ctx)
	if err != nil {
		return "", fmt.Errorf("index document in %s: %w", collection, err)
	}
	if resp.Result != "created" {
		return "", fmt.Errorf("%w: index returned result %q (status %d)", ErrWriteFailed, resp.Result, resp.Status)
	}
	if err := s.Refresh(ctx, collection); err != nil {
		return "", err
	}
	return resp.Id, nil
}

// GetByID fetches one document. A missing document is an absent result,
// not an error: (nil, false, nil). Any other failure propagates.
func (s *Store) GetByID(ctx context.Context, collection, docType, id string) (Document, bool, error) {
	resp, err := s.es.Get().
		Index(collection).
		Type(typeOrDefault(docType)).
		Id(id).
		Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get document %s/%s: %w", collection, id, err)
	}
	var doc Document
	if err := json.Unmarshal(resp.Source, &doc); err != nil {
		return nil, false, fmt.Errorf("decode document %s/%s: %w", collection, id, err)
	}
	return doc, true, nil
}

// UpdateDocument applies a partial merge update: only the supplied
// fields change. Failures are reported as false, never raised — a
// missing id mid-update is an expected race, so the caller gets a
// boolean outcome instead of an error to disarm.
func (s *Store) UpdateDocument(ctx context.Context, collection, docType, id string, fields Document) bool {
	_, err := s.es.Update().
		Index(collection).
		Type(typeOrDefault(docType)).
		Id(id).
		Doc(fields).
		Refresh("true").
		Do(ctx)
	if err != nil {
		s.logger.Warn("update document failed",
			zap.String("collection", collection),
			zap.String("id", id),
			zap.Error(err))
		return false
	}
	if err := s.Refresh(ctx, collection); err != nil {
		s.logger.Warn("refresh after update failed",
			zap.String("collection", collection),
			zap.Error(err))
		return false
	}
	return true
}

// GetAll returns every document of the (collection, type) pair, ordered
// ascending by the store's internal id so repeated calls enumerate in
// the same order. No pagination: result sets are bounded only by the
// index max result window.
func (s *Store) GetAll(ctx context.Context, collection, docType string) ([]Document, error) {
	return s.search(ctx, collection, docType, elastic.NewMatchAllQuery())
}

// SearchByField matches documents whose field contains query as a
// case-sensitive substring. The match runs as a regexp .*query.* against
// the raw value (the keyword sub-field), so it also matches inside a
// token: "aa" matches "aa", "aa bb" and "aaa". Results come back in the
// same ascending-id order as GetAll.
func (s *Store) SearchByField(ctx context.Context, collection, docType, field, query string) ([]Document, error) {
	q := elastic.NewRegexpQuery(field+".keyword", ".*"+query+".*")
	return s.search(ctx, collection, docType, q)
}

func (s *Store) search(ctx context.Context, collection, docType string, query elastic.Query) ([]Document, error) {
	resp, err := s.es.Search().
		Index(collection).
		Type(typeOrDefault(docType)).
		Query(query).
		Sort("_id", true).
		Size(searchSizeLimit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}
	docs := make([]Document, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var doc Document
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return nil, fmt.Errorf("decode hit %s/%s: %w", collection, hit.Id, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// DeleteDocument removes a document and refreshes the collection.
// Deleting an id that is already gone succeeds silently.
func (s *Store) DeleteDocument(ctx context.Context, collection, docType, id string) error {
	_, err := s.es.Delete().
		Index(collection).
		Type(typeOrDefault(docType)).
		Id(id).
		Refresh("true").
		Do(ctx)
	if err != nil && !elastic.IsNotFound(err) {
		return fmt.Errorf("delete document %s/%s: %w", collection, id, err)
	}
	return s.Refresh(ctx, collection)
}

// DeleteCollection drops the whole collection. A collection that does
// not exist counts as deleted (idempotent), so the only false outcomes
// are unexpected store errors.
func (s *Store) DeleteCollection(ctx context.Context, collection string) (bool, error) {
	resp, err := s.es.DeleteIndex(collection).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return true, nil
		}
		return false, fmt.Errorf("delete index %s: %w", collection, err)
	}
	return resp.Acknowledged, nil
}

// Refresh makes all prior writes to the collection visible to reads and
// searches. Every mutating call issues it; callers batching several
// writes can invoke it once at the end instead of awaiting each write.
func (s *Store) Refresh(ctx context.Context, collection string) error {
	if _, err := s.es.Refresh(collection).Do(ctx); err != nil {
		return fmt.Errorf("refresh %s: %w", collection, err)
	}
	return nil
}

// Close releases the connection handle. Operations on the store after
// Close are undefined.
func (s *Store) Close() {
	s.es.Stop()
}

func typeOrDefault(docType string) string {
	if docType == "" {
		return defaultDocType
	}
	return docType
}
