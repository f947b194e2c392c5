package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/akozadaev/po-api/internal/core/domain"
	"github.com/akozadaev/po-api/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (oh *OrderHandler) ListOrders(ctx *gin.Context) {
	search := ctx.Query("search")
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	list, err := oh.service.ListOrders(ctx, search, page)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderPageResp(list))
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	orderID, err := parseID(ctx)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	order, err := oh.service.GetOrder(ctx, orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(order))
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	var req orderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleError(ctx, domain.ErrBadRequest)
		return
	}

	patch, items, err := req.validate(false)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	if _, err := oh.service.CreateOrder(ctx, patch, items); err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleMessage(ctx, "Purchase order created successfully!")
}

func (oh *OrderHandler) UpdateOrder(ctx *gin.Context) {
	orderID, err := parseID(ctx)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	var req orderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleError(ctx, domain.ErrBadRequest)
		return
	}

	patch, items, err := req.validate(true)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	if _, err := oh.service.UpdateOrder(ctx, orderID, patch, items); err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleMessage(ctx, "Purchase order updated successfully!")
}

func (oh *OrderHandler) DeleteOrder(ctx *gin.Context) {
	orderID, err := parseID(ctx)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	if err := oh.service.DeleteOrder(ctx, orderID); err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleMessage(ctx, "Purchase order deleted successfully!")
}

func (oh *OrderHandler) DeleteOrders(ctx *gin.Context) {
	var req bulkDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleError(ctx, domain.ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		oh.handleError(ctx, err)
		return
	}

	if err := oh.service.DeleteOrders(ctx, req.IDs); err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			ctx.JSON(http.StatusNotFound, messageResponse{Message: "One of the given ids is not found"})
			return
		}
		oh.handleError(ctx, err)
		return
	}

	oh.handleMessage(ctx, "Purchase orders deleted successfully!")
}

func parseID(ctx *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrBadRequest
	}
	return id, nil
}
