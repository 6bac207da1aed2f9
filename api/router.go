package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Establishes HTTP router.
func (service *Service) setupRouter(server *http.Server) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(service.corsMiddleware())

	router.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})

	router.GET(EngineURL, service.engine)

	documents := router.Group("/").Use(service.documentSizeMiddleware())
	documents.POST(RenderURL, service.render)
	documents.POST(AnalyzeURL, service.analyze)
	documents.POST(ContentURL, service.normalizeContent)

	server.Handler = router
	service.router = router
}
