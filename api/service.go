package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Drolfothesgnir/markplus/content"
	"github.com/Drolfothesgnir/markplus/pipeline"
	"github.com/Drolfothesgnir/markplus/tmpstore"
	"github.com/Drolfothesgnir/markplus/util"
	"github.com/gin-gonic/gin"
)

const (
	// api routes
	RequestIDHeader = "X-Request-ID"
	RenderURL       = "/render"
	AnalyzeURL      = "/analyze"
	EngineURL       = "/engine"
	ContentURL      = "/content"
)

var (
	// api errors
	ErrInvalidParams    = errors.New("invalid params")
	ErrDocumentTooLarge = errors.New("document is too large")
)

type Service struct {
	config    util.Config
	processor *pipeline.Processor
	schema    content.Schema
	store     tmpstore.Store
	server    *http.Server
	router    *gin.Engine
}

// Returns new service instance with provided config, processor and store of the rendered documents.
func NewService(
	config util.Config,
	processor *pipeline.Processor,
	store tmpstore.Store,
) (*Service, error) {
	addr, err := config.ListenAddress()
	if err != nil {
		return nil, err
	}

	service := &Service{
		config:    config,
		processor: processor,
		schema:    content.NewSections(processor),
		store:     store,
	}

	server := &http.Server{
		Addr: addr,
	}

	// caps how long a client can take to send just the headers (blocks slowloris).
	server.ReadHeaderTimeout = 5 * time.Second
	// caps time to read the full request (incl. body).
	server.ReadTimeout = 10 * time.Second
	// caps time you’ll spend writing the response (no “forever hanging” clients)
	server.WriteTimeout = 15 * time.Second
	// how long to keep idle keep-alive connections open.
	server.IdleTimeout = 60 * time.Second

	service.setupRouter(server)

	service.server = server

	return service, nil
}

// Start runs the HTTP server
func (service *Service) Start() error {
	return service.server.ListenAndServe()
}

func (service *Service) Shutdown(ctx context.Context) error {
	return service.server.Shutdown(ctx)
}
