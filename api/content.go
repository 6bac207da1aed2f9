package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Drolfothesgnir/markplus/content"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ContentResponse struct {
	Schema   string                 `json:"schema"`
	Version  int32                  `json:"version"`
	Body     json.RawMessage        `json:"body"`
	Warnings []content.FieldWarning `json:"warnings"`
}

// normalizeContent validates a structured document body and returns it with every
// markdown field normalized.
func (service *Service) normalizeContent(ctx *gin.Context) {
	raw, err := ctx.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse(ErrDocumentTooLarge))
			return
		}

		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	parsed, err := service.schema.Parse(raw)
	if err != nil {
		var verr *content.ValidationError
		if errors.As(err, &verr) {
			ctx.JSON(http.StatusBadRequest, NewErrorResponse(ErrInvalidParams, contentErrorFields(verr)...))
			return
		}

		log.Error().Err(err).Str("request_id", extractRequestIDFromCtx(ctx)).Msg("cannot normalize content")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, ContentResponse{
		Schema:   service.schema.Name(),
		Version:  service.schema.Version(),
		Body:     parsed.Body,
		Warnings: parsed.Warnings,
	})
}

// contentErrorFields names the failed fields by their path in the body.
func contentErrorFields(verr *content.ValidationError) []ErrorField {
	fields := ExtractErrorFields(verr.Err)
	if len(fields) == 0 {
		return []ErrorField{{FieldName: verr.Path, ErrorMessage: verr.Err.Error()}}
	}

	for i := range fields {
		fields[i].FieldName = verr.Path + "." + fields[i].FieldName
	}

	return fields
}
