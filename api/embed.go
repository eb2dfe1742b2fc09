// Package api holds the static OpenAPI document served by the HTTP router.
package api

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
