package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/docstore-service/internal/elasticsearch"
	"github.com/psds-microservice/docstore-service/internal/handler"
	"github.com/psds-microservice/docstore-service/internal/router"
	"github.com/psds-microservice/docstore-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDocService struct {
	createID  string
	createErr error
	doc       elasticsearch.Document
	found     bool
	getErr    error
	updated   bool
	deleteErr error
	docs      []elasticsearch.Document
	listErr   error
	dropOK    bool
	dropErr   error
	flushErr  error

	lastCreate *service.CreateDocumentInput
	lastField  string
	lastQuery  string
}

func (f *fakeDocService) CreateDocument(_ context.Context, in *service.CreateDocumentInput) (string, error) {
	f.lastCreate = in
	return f.createID, f.createErr
}

func (f *fakeDocService) GetDocument(context.Context, string, string, string) (elasticsearch.Document, bool, error) {
	return f.doc, f.found, f.getErr
}

func (f *fakeDocService) UpdateDocument(context.Context, string, string, string, elasticsearch.Document) bool {
	return f.updated
}

func (f *fakeDocService) DeleteDocument(context.Context, string, string, string) error {
	return f.deleteErr
}

func (f *fakeDocService) ListDocuments(context.Context, string, string) ([]elasticsearch.Document, error) {
	return f.docs, f.listErr
}

func (f *fakeDocService) SearchDocuments(_ context.Context, _, _, field, query string) ([]elasticsearch.Document, error) {
	f.lastField, f.lastQuery = field, query
	return f.docs, f.listErr
}

func (f *fakeDocService) DropCollection(context.Context, string) (bool, error) {
	return f.dropOK, f.dropErr
}

func (f *fakeDocService) Flush(context.Context, string) error { return f.flushErr }

var _ service.DocumentServicer = (*fakeDocService)(nil)

func serve(t *testing.T, svc service.DocumentServicer, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := router.New(handler.NewDocumentHandler(svc))
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateDocumentEndpoint(t *testing.T) {
	svc := &fakeDocService{createID: "doc-1"}

	w := serve(t, svc, http.MethodPost, "/collections/people/documents", `{"name": "alice"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "doc-1", decode(t, w)["id"])

	require.NotNil(t, svc.lastCreate)
	assert.Equal(t, "people", svc.lastCreate.Collection)
	assert.Equal(t, "_doc", svc.lastCreate.Type, "type defaults to _doc")
	assert.Equal(t, "alice", svc.lastCreate.Fields["name"])
}

func TestCreateDocumentEndpointCarriesTypeTag(t *testing.T) {
	svc := &fakeDocService{createID: "doc-1"}

	w := serve(t, svc, http.MethodPost, "/collections/people/documents?type=employee", `{"name": "alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "employee", svc.lastCreate.Type)
}

func TestCreateDocumentEndpointValidation(t *testing.T) {
	svc := &fakeDocService{createID: "doc-1"}

	// Collection name violates the naming rule.
	w := serve(t, svc, http.MethodPost, "/collections/camelCase/documents", `{"name": "alice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Not JSON.
	w = serve(t, svc, http.MethodPost, "/collections/people/documents", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Field value outside the data model.
	w = serve(t, svc, http.MethodPost, "/collections/people/documents", `{"age": 42}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Nil(t, svc.lastCreate, "validation failures must not reach the service")
}

func TestGetDocumentEndpoint(t *testing.T) {
	svc := &fakeDocService{doc: elasticsearch.Document{"name": "alice"}, found: true}

	w := serve(t, svc, http.MethodGet, "/collections/people/documents/doc-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, true, out["found"])
	assert.Equal(t, "doc-1", out["id"])
	fields := out["fields"].(map[string]interface{})
	assert.Equal(t, "alice", fields["name"])
}

func TestGetDocumentEndpointAbsent(t *testing.T) {
	svc := &fakeDocService{found: false}

	w := serve(t, svc, http.MethodGet, "/collections/people/documents/missing", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, decode(t, w)["found"])
}

func TestUpdateDocumentEndpoint(t *testing.T) {
	svc := &fakeDocService{updated: true}
	w := serve(t, svc, http.MethodPatch, "/collections/people/documents/doc-1", `{"name": "bob"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["updated"])

	// A failed update is still a 200 with updated=false — boolean
	// outcome, not an error.
	svc = &fakeDocService{updated: false}
	w = serve(t, svc, http.MethodPatch, "/collections/people/documents/doc-1", `{"name": "bob"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["updated"])
}

func TestDeleteDocumentEndpoint(t *testing.T) {
	svc := &fakeDocService{}
	w := serve(t, svc, http.MethodDelete, "/collections/people/documents/doc-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["deleted"])
}

func TestListDocumentsEndpoint(t *testing.T) {
	svc := &fakeDocService{docs: []elasticsearch.Document{
		{"name": "aa"},
		{"name": "bb"},
	}}

	w := serve(t, svc, http.MethodGet, "/collections/people/documents", "")
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.EqualValues(t, 2, out["total"])
	assert.Len(t, out["documents"], 2)
}

func TestSearchEndpoint(t *testing.T) {
	svc := &fakeDocService{docs: []elasticsearch.Document{{"name": "aa"}}}

	w := serve(t, svc, http.MethodGet, "/collections/people/search?field=name&q=aa", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "name", svc.lastField)
	assert.Equal(t, "aa", svc.lastQuery)

	w = serve(t, svc, http.MethodGet, "/collections/people/search?q=aa", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "field is required")

	w = serve(t, svc, http.MethodGet, "/collections/people/search?field=name", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "q is required")
}

func TestDropCollectionEndpoint(t *testing.T) {
	svc := &fakeDocService{dropOK: true}
	w := serve(t, svc, http.MethodDelete, "/collections/people", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["acknowledged"])
}

func TestRefreshEndpoint(t *testing.T) {
	svc := &fakeDocService{}
	w := serve(t, svc, http.MethodPost, "/collections/people/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["refreshed"])
}

func TestHealthEndpoints(t *testing.T) {
	svc := &fakeDocService{}
	assert.Equal(t, http.StatusOK, serve(t, svc, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(t, svc, http.MethodGet, "/ready", "").Code)
}

func TestRequestIDHeader(t *testing.T) {
	svc := &fakeDocService{}
	w := serve(t, svc, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
