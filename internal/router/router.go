package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/psds-microservice/docstore-service/api"
	"github.com/psds-microservice/docstore-service/internal/handler"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	pathHealth  = "/health"
	pathReady   = "/ready"
	pathSwagger = "/swagger"
)

// requestID tags every request with an X-Request-ID for log correlation,
// keeping an id the client already sent.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func New(docHandler *handler.DocumentHandler) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestID())
	r.GET(pathHealth, handler.Health)
	r.GET(pathReady, handler.Ready)
	r.GET(pathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, pathSwagger+"/") })
	r.GET(pathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = pathSwagger + "/index.html"
			c.Request.RequestURI = pathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	r.POST("/collections/:collection/documents", docHandler.Create)
	r.GET("/collections/:collection/documents", docHandler.List)
	r.GET("/collections/:collection/documents/:id", docHandler.Get)
	r.PATCH("/collections/:collection/documents/:id", docHandler.Update)
	r.DELETE("/collections/:collection/documents/:id", docHandler.Delete)
	r.GET("/collections/:collection/search", docHandler.Search)
	r.DELETE("/collections/:collection", docHandler.DropCollection)
	r.POST("/collections/:collection/refresh", docHandler.Refresh)
	return r
}
