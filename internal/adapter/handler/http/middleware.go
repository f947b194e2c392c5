package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akozadaev/po-api/internal/adapter/metrics"
	"github.com/akozadaev/po-api/internal/core/domain"
	"github.com/akozadaev/po-api/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-Id"
const requestIDKey = "request_id"

func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.Request.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(requestIDKey, id)
		ctx.Header(requestIDHeader, id)
		ctx.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		logger.Info("request",
			zap.String("id", ctx.GetString(requestIDKey)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func observeMetrics(m *metrics.ServerMetrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		handler := ctx.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.Requests.WithLabelValues(handler, strconv.Itoa(ctx.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}

// capabilityCheck is the authorization hook at the boundary. The shipped
// Authorizer allows everything; the middleware exists so a real policy can
// be plugged in without touching the handlers.
func capabilityCheck(authorizer port.Authorizer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		action := port.ActionWrite
		if ctx.Request.Method == http.MethodGet {
			action = port.ActionRead
		}
		if err := authorizer.Authorize(ctx, action, ctx.FullPath()); err != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden,
				messageResponse{Message: domain.ErrForbidden.Error()})
			return
		}
		ctx.Next()
	}
}
