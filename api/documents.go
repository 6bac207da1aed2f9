package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Drolfothesgnir/markplus/markup"
	"github.com/Drolfothesgnir/markplus/tmpstore"
	"github.com/Drolfothesgnir/markplus/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// JSON escaping can make a document up to six times longer, plus the rest of the request.
const (
	jsonOverhead  = 6
	requestFields = 1024
)

// This middleware caps the size of the request body, so huge documents are rejected
// before they are decoded.
func (service *Service) documentSizeMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		limit := int64(service.config.MaxDocumentSize)*jsonOverhead + requestFields
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)
		ctx.Next()
	}
}

// bindDocument decodes the request into req and checks the size of the markdown.
// On failure the response is written and false is returned.
func (service *Service) bindDocument(ctx *gin.Context, req any, markdown func() string) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse(ErrDocumentTooLarge))
			return false
		}

		ctx.JSON(http.StatusBadRequest, NewErrorResponse(ErrInvalidParams, ExtractErrorFields(err)...))
		return false
	}

	if size := len(markdown()); size > service.config.MaxDocumentSize {
		field := ErrorField{"markdown", fmt.Sprintf("document has %d bytes, at most %d are allowed", size, service.config.MaxDocumentSize)}
		ctx.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse(ErrDocumentTooLarge, field))
		return false
	}

	return true
}

type RenderRequest struct {
	// ID identifies the document for the client, a new one is generated when it is empty.
	ID       string `json:"id" binding:"omitempty,uuid"`
	Markdown string `json:"markdown" binding:"required"`
	Format   string `json:"format" binding:"omitempty,oneof=markdown html"`
}

type RenderResponse struct {
	ID         string           `json:"id"`
	RequestID  string           `json:"request_id"`
	Format     string           `json:"format"`
	Output     string           `json:"output"`
	TextLength int              `json:"text_length"`
	Warnings   []markup.Warning `json:"warnings"`
	Cached     bool             `json:"cached"`
}

func (service *Service) render(ctx *gin.Context) {
	var req RenderRequest
	if !service.bindDocument(ctx, &req, func() string { return req.Markdown }) {
		return
	}

	if req.Format == "" {
		req.Format = util.FormatMarkdown
	}

	key := cacheKey(req.Format, req.Markdown)

	rendered, err := service.store.GetRendered(ctx, key)
	cached := err == nil

	if err != nil {
		if !errors.Is(err, tmpstore.ErrNotFound) {
			log.Warn().Err(err).Str("request_id", extractRequestIDFromCtx(ctx)).Msg("cannot read the render cache")
		}

		rendered = service.renderDocument(req.Format, req.Markdown)

		if service.config.CacheTTL > 0 {
			if err := service.store.SaveRendered(ctx, key, *rendered, service.config.CacheTTL); err != nil {
				log.Warn().Err(err).Str("request_id", extractRequestIDFromCtx(ctx)).Msg("cannot write the render cache")
			}
		}
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	ctx.JSON(http.StatusOK, RenderResponse{
		ID:         id,
		RequestID:  extractRequestIDFromCtx(ctx),
		Format:     rendered.Format,
		Output:     rendered.Output,
		TextLength: rendered.TextLength,
		Warnings:   rendered.Warnings,
		Cached:     cached,
	})
}

func (service *Service) renderDocument(format, markdown string) *tmpstore.Rendered {
	res := service.processor.Analyze(markdown)

	output := res.Output
	if format == util.FormatHTML {
		output = res.HTML
	}

	return &tmpstore.Rendered{
		Format:     format,
		Output:     output,
		TextLength: res.TextLength,
		Warnings:   res.Warnings,
		CreatedAt:  time.Now(),
	}
}

// cacheKey identifies a rendering of markdown in the given format.
func cacheKey(format, markdown string) string {
	sum := sha256.Sum256([]byte(format + "\x00" + markdown))
	return hex.EncodeToString(sum[:])
}

type AnalyzeRequest struct {
	Markdown string `json:"markdown" binding:"required"`
}

// analyze returns every result of the processing, the tree included.
func (service *Service) analyze(ctx *gin.Context) {
	var req AnalyzeRequest
	if !service.bindDocument(ctx, &req, func() string { return req.Markdown }) {
		return
	}

	ctx.JSON(http.StatusOK, service.processor.Analyze(req.Markdown))
}

type EngineResponse struct {
	Name       string   `json:"name"`
	Version    int32    `json:"version"`
	Extensions []string `json:"extensions"`
}

func (service *Service) engine(ctx *gin.Context) {
	extensions := service.processor.Extensions()
	if extensions == nil {
		extensions = []string{}
	}

	ctx.JSON(http.StatusOK, EngineResponse{
		Name:       service.processor.Name(),
		Version:    service.processor.Version(),
		Extensions: extensions,
	})
}
