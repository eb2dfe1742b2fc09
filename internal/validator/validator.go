package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/psds-microservice/docstore-service/internal/elasticsearch"
)

// Validator validates input DTOs for docstore-service
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateCollectionName checks the collection naming rule shared with
// the store adapter.
func (v *Validator) ValidateCollectionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("validation: collection is required")
	}
	if err := elasticsearch.ValidateIndexName(name); err != nil {
		return errors.New("validation: collection must match ^[a-z0-9-]+$")
	}
	return nil
}

// ValidateDocumentID checks a document id path parameter.
func (v *Validator) ValidateDocumentID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("validation: document id is required")
	}
	return nil
}

// ValidateSearchParams checks field/query pairs for search requests.
func (v *Validator) ValidateSearchParams(field, query string) error {
	var errs []string
	if strings.TrimSpace(field) == "" {
		errs = append(errs, "field is required")
	}
	if query == "" {
		errs = append(errs, "q is required")
	}
	if len(errs) > 0 {
		return errors.New("validation: " + strings.Join(errs, "; "))
	}
	return nil
}

// ValidateDocumentFields enforces the data model: a non-empty flat
// mapping whose values are strings or arrays of strings. Nested objects,
// numbers and booleans are rejected.
func (v *Validator) ValidateDocumentFields(fields elasticsearch.Document) error {
	if len(fields) == 0 {
		return errors.New("validation: document fields are required")
	}
	for name, value := range fields {
		switch val := value.(type) {
		case string:
		case []string:
		case []interface{}:
			for _, item := range val {
				if _, ok := item.(string); !ok {
					return fmt.Errorf("validation: field %q must contain only strings", name)
				}
			}
		default:
			return fmt.Errorf("validation: field %q must be a string or an array of strings", name)
		}
	}
	return nil
}
