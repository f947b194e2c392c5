package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/akozadaev/po-api/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,
	domain.ErrBadRequest:      http.StatusBadRequest,
	domain.ErrForbidden:       http.StatusForbidden,
}

type jsonDecimal decimal.Decimal

func (j jsonDecimal) MarshalJSON() ([]byte, error) {
	s := fmt.Sprintf("%f", decimal.Decimal(j))
	return []byte(s), nil
}

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Message string              `json:"message"`
	Details map[string][]string `json:"details"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleError maps a service error to an HTTP status. Validation errors get
// the 422 envelope with the per-field details map.
func (h *Handler) handleError(ctx *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		ctx.JSON(http.StatusUnprocessableEntity, validationResponse{
			Message: "Invalid data",
			Details: verr.Details,
		})
		return
	}

	statusCode := http.StatusInternalServerError
	for e, code := range errorStatusMap {
		if errors.Is(err, e) {
			statusCode = code
			break
		}
	}
	if statusCode == http.StatusInternalServerError {
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.JSON(statusCode, messageResponse{Message: err.Error()})
}

// handleMessage sends the plain confirmation envelope.
func (h *Handler) handleMessage(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, messageResponse{Message: message})
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, data)
}
