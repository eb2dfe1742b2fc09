package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/docstore-service/internal/elasticsearch"
	"github.com/psds-microservice/docstore-service/internal/service"
	"github.com/psds-microservice/docstore-service/internal/validator"
)

type DocumentHandler struct {
	svc       service.DocumentServicer
	validator *validator.Validator
}

func NewDocumentHandler(svc service.DocumentServicer) *DocumentHandler {
	return &DocumentHandler{
		svc:       svc,
		validator: validator.New(),
	}
}

// docType reads the legacy type tag from the query string; every
// operation carries it.
func docType(c *gin.Context) string {
	return c.DefaultQuery("type", "_doc")
}

// Create POST /collections/:collection/documents?type=
func (h *DocumentHandler) Create(c *gin.Context) {
	collection := c.Param("collection")
	var fields elasticsearch.Document
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := h.validator.ValidateCollectionName(collection); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validator.ValidateDocumentFields(fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.svc.CreateDocument(c.Request.Context(), &service.CreateDocumentInput{
		Collection: collection,
		Type:       docType(c),
		Fields:     fields,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Get GET /collections/:collection/documents/:id?type=
func (h *DocumentHandler) Get(c *gin.Context) {
	collection, id := c.Param("collection"), c.Param("id")
	if err := h.validator.ValidateDocumentID(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, found, err := h.svc.GetDocument(c.Request.Context(), collection, docType(c), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		// Absent is a first-class outcome, not a failure.
		c.JSON(http.StatusNotFound, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "id": id, "fields": doc})
}

// Update PATCH /collections/:collection/documents/:id?type=
func (h *DocumentHandler) Update(c *gin.Context) {
	collection, id := c.Param("collection"), c.Param("id")
	var fields elasticsearch.Document
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := h.validator.ValidateDocumentID(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validator.ValidateDocumentFields(fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated := h.svc.UpdateDocument(c.Request.Context(), collection, docType(c), id, fields)
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// Delete DELETE /collections/:collection/documents/:id?type=
func (h *DocumentHandler) Delete(c *gin.Context) {
	collection, id := c.Param("collection"), c.Param("id")
	if err := h.validator.ValidateDocumentID(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.DeleteDocument(c.Request.Context(), collection, docType(c), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// List GET /collections/:collection/documents?type=
func (h *DocumentHandler) List(c *gin.Context) {
	collection := c.Param("collection")
	docs, err := h.svc.ListDocuments(c.Request.Context(), collection, docType(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(docs), "documents": docs})
}

// Search GET /collections/:collection/search?field=...&q=...&type=
func (h *DocumentHandler) Search(c *gin.Context) {
	collection := c.Param("collection")
	field, query := c.Query("field"), c.Query("q")
	if err := h.validator.ValidateSearchParams(field, query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	docs, err := h.svc.SearchDocuments(c.Request.Context(), collection, docType(c), field, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(docs), "documents": docs})
}

// DropCollection DELETE /collections/:collection
func (h *DocumentHandler) DropCollection(c *gin.Context) {
	collection := c.Param("collection")
	if err := h.validator.ValidateCollectionName(collection); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ok, err := h.svc.DropCollection(c.Request.Context(), collection)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": ok})
}

// Refresh POST /collections/:collection/refresh
func (h *DocumentHandler) Refresh(c *gin.Context) {
	collection := c.Param("collection")
	if err := h.svc.Flush(c.Request.Context(), collection); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"refreshed": true})
}
