package http

import (
	"github.com/akozadaev/po-api/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	Handler
	service port.Service
}

func NewCategoryHandler(service port.Service, logger *zap.Logger) (*CategoryHandler, error) {
	return &CategoryHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (ch *CategoryHandler) ListCategories(ctx *gin.Context) {
	list, err := ch.service.ListCategories(ctx)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	result := make([]categoryResp, 0, len(list))
	for _, category := range list {
		result = append(result, categoryResp{ID: category.ID, Name: category.Name})
	}

	ch.handleSuccess(ctx, result)
}
