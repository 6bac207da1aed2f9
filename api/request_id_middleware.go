package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const ctxRequestIDKey = "request_id"

// This middleware tags every request with an ID, taken from the X-Request-ID header when it
// is a valid UUID, and logs the request once it is served.
func requestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := uuid.Parse(ctx.GetHeader(RequestIDHeader))
		if err != nil {
			id = uuid.New()
		}

		ctx.Set(ctxRequestIDKey, id.String())
		ctx.Header(RequestIDHeader, id.String())

		start := time.Now()
		ctx.Next()

		log.Info().
			Str("request_id", id.String()).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request served")
	}
}

// Helper function to get the request ID after middleware check.
func extractRequestIDFromCtx(ctx *gin.Context) string {
	return ctx.GetString(ctxRequestIDKey)
}
