package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apihttp "github.com/akozadaev/po-api/internal/adapter/handler/http"
	"github.com/akozadaev/po-api/internal/core/domain"
	"github.com/akozadaev/po-api/internal/core/port/mock"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T, svc *mock.MockService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	orderHandler, err := apihttp.NewOrderHandler(svc, logger)
	assert.NoError(t, err)
	categoryHandler, err := apihttp.NewCategoryHandler(svc, logger)
	assert.NoError(t, err)

	router := gin.New()
	api := router.Group("/api")
	orders := api.Group("/purchase-orders")
	orders.GET("", orderHandler.ListOrders)
	orders.POST("", orderHandler.CreateOrder)
	orders.DELETE("/delete", orderHandler.DeleteOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.PATCH("/:id", orderHandler.UpdateOrder)
	orders.DELETE("/:id", orderHandler.DeleteOrder)
	api.GET("/categories", categoryHandler.ListCategories)

	return router
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOrderHandler_CreateValidation(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	type validationTest struct {
		name      string
		body      string
		expFields []string
	}

	tests := []validationTest{
		{
			name:      "missing header fields and items",
			body:      `{}`,
			expFields: []string{"po_number", "buyer_name", "items"},
		},
		{
			name: "missing nested item fields",
			body: `{"po_number":"PO-1","buyer_name":"ACME","items":[{"quantity":1}]}`,
			expFields: []string{
				"items.0.description",
				"items.0.unit_price",
				"items.0.category_id",
			},
		},
		{
			name: "second item path is indexed",
			body: `{"po_number":"PO-1","buyer_name":"ACME","items":[
				{"description":"Widget","quantity":1,"unit_price":10,"category_id":1},
				{"description":"Gadget","unit_price":5,"category_id":1}]}`,
			expFields: []string{"items.1.quantity"},
		},
		{
			name: "unit price out of range",
			body: `{"po_number":"PO-1","buyer_name":"ACME","items":[
				{"description":"Widget","quantity":1,"unit_price":10000000000.00,"category_id":1}]}`,
			expFields: []string{"items.0.unit_price"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc := mock.NewMockService(mockCtrl)
			router := setupRouter(t, svc)

			rec := doRequest(router, http.MethodPost, "/api/purchase-orders", test.body)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, "Invalid data", body["message"])
			details, ok := body["details"].(map[string]any)
			assert.True(t, ok)
			for _, field := range test.expFields {
				assert.Contains(t, details, field)
			}
		})
	}
}

func TestOrderHandler_Create(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().CreateOrder(gomock.Any(),
		domain.OrderPatch{Number: "PO-1", BuyerName: "ACME"}, gomock.Any()).
		DoAndReturn(func(ctx any, patch domain.OrderPatch, items []domain.ItemSpec) (*domain.Order, error) {
			assert.Len(t, items, 2)
			// Ids are never carried over on the create path.
			assert.Nil(t, items[0].ID)
			assert.Nil(t, items[1].ID)
			assert.Zero(t, items[0].UnitPrice.Cmp(decimal.MustParse("10")))
			return &domain.Order{ID: 1}, nil
		})

	router := setupRouter(t, svc)
	rec := doRequest(router, http.MethodPost, "/api/purchase-orders",
		`{"po_number":"PO-1","buyer_name":"ACME","items":[
			{"description":"Widget","quantity":1,"unit_price":10,"category_id":1},
			{"id":42,"description":"Gadget","quantity":2,"unit_price":5,"category_id":2}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Purchase order created successfully!", decodeBody(t, rec)["message"])
}

func TestOrderHandler_Update(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().UpdateOrder(gomock.Any(), uint64(7),
		domain.OrderPatch{Number: "PO-7", BuyerName: "ACME"}, gomock.Any()).
		DoAndReturn(func(ctx any, orderID uint64, patch domain.OrderPatch, items []domain.ItemSpec) (*domain.Order, error) {
			assert.Len(t, items, 2)
			if assert.NotNil(t, items[0].ID) {
				assert.Equal(t, uint64(1), *items[0].ID)
			}
			assert.Nil(t, items[1].ID)
			return &domain.Order{ID: 7}, nil
		})

	router := setupRouter(t, svc)
	rec := doRequest(router, http.MethodPatch, "/api/purchase-orders/7",
		`{"po_number":"PO-7","buyer_name":"ACME","items":[
			{"id":1,"description":"Widget","quantity":2,"unit_price":20,"category_id":1},
			{"description":"Gadget","quantity":1,"unit_price":10,"category_id":1}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Purchase order updated successfully!", decodeBody(t, rec)["message"])
}

func TestOrderHandler_Get(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("found with items and categories", func(t *testing.T) {
		svc := mock.NewMockService(mockCtrl)
		order := &domain.Order{
			ID:        5,
			Number:    "PO-5",
			BuyerName: "ACME",
			Total:     decimal.MustParse("40"),
			Items: []*domain.OrderItem{
				{
					ID:          1,
					OrderID:     5,
					Description: "Widget",
					Quantity:    2,
					UnitPrice:   decimal.MustParse("20"),
					CategoryID:  3,
					Category:    &domain.Category{ID: 3, Name: "Category 3"},
				},
			},
		}
		svc.EXPECT().GetOrder(gomock.Any(), uint64(5)).Return(order, nil)

		router := setupRouter(t, svc)
		rec := doRequest(router, http.MethodGet, "/api/purchase-orders/5", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "PO-5", body["po_number"])
		assert.Equal(t, float64(40), body["total"])
		items, ok := body["items"].([]any)
		if assert.True(t, ok) && assert.Len(t, items, 1) {
			item := items[0].(map[string]any)
			assert.Equal(t, "Widget", item["description"])
			category := item["category"].(map[string]any)
			assert.Equal(t, "Category 3", category["name"])
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc := mock.NewMockService(mockCtrl)
		svc.EXPECT().GetOrder(gomock.Any(), uint64(404)).Return(nil, domain.ErrDataNotFound)

		router := setupRouter(t, svc)
		rec := doRequest(router, http.MethodGet, "/api/purchase-orders/404", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOrderHandler_List(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	page := &domain.OrderPage{
		Orders: []*domain.Order{
			{ID: 2, Number: "PO-2", BuyerName: "ACME"},
			{ID: 1, Number: "PO-1", BuyerName: "Globex"},
		},
		Total:    12,
		Page:     1,
		PageSize: 10,
	}
	svc.EXPECT().ListOrders(gomock.Any(), "acme", 1).Return(page, nil)

	router := setupRouter(t, svc)
	rec := doRequest(router, http.MethodGet, "/api/purchase-orders?search=acme", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data, ok := body["data"].([]any)
	if assert.True(t, ok) {
		assert.Len(t, data, 2)
	}
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(12), meta["total"])
	assert.Equal(t, float64(10), meta["per_page"])
	assert.Equal(t, float64(2), meta["last_page"])
}

func TestOrderHandler_Delete(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("success", func(t *testing.T) {
		svc := mock.NewMockService(mockCtrl)
		svc.EXPECT().DeleteOrder(gomock.Any(), uint64(3)).Return(nil)

		router := setupRouter(t, svc)
		rec := doRequest(router, http.MethodDelete, "/api/purchase-orders/3", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Purchase order deleted successfully!", decodeBody(t, rec)["message"])
	})

	t.Run("not found", func(t *testing.T) {
		svc := mock.NewMockService(mockCtrl)
		svc.EXPECT().DeleteOrder(gomock.Any(), uint64(3)).Return(domain.ErrDataNotFound)

		router := setupRouter(t, svc)
		rec := doRequest(router, http.MethodDelete, "/api/purchase-orders/3", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOrderHandler_DeleteMany(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("success", func(t *testing.T) {
		svc := mock.NewMockService(mockCtrl)
		svc.EXPECT().DeleteOrders(gomock.Any(), []uint64{1, 2}).Return(nil)

		router := setupRouter(t, svc)
		rec := doRequest(router, http.MethodDelete, "/api/purchase-orders/delete", `{"ids":[1,2]}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Purchase orders deleted successfully!", decodeBody(t, rec)["message"])
	})

	t.Run("one unknown id fails the batch", func(t *testing.T) {
		svc := mock.NewMockService(mockCtrl)
		svc.EXPECT().DeleteOrders(gomock.Any(), []uint64{1, 2, 3}).Return(domain.ErrDataNotFound)

		router := setupRouter(t, svc)
		rec := doRequest(router, http.MethodDelete, "/api/purchase-orders/delete", `{"ids":[1,2,3]}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "One of the given ids is not found", decodeBody(t, rec)["message"])
	})

	t.Run("missing ids", func(t *testing.T) {
		svc := mock.NewMockService(mockCtrl)

		router := setupRouter(t, svc)
		rec := doRequest(router, http.MethodDelete, "/api/purchase-orders/delete", `{}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestCategoryHandler_List(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	svc.EXPECT().ListCategories(gomock.Any()).Return([]*domain.Category{
		{ID: 1, Name: "Category 1"},
		{ID: 2, Name: "Category 2"},
	}, nil)

	router := setupRouter(t, svc)
	rec := doRequest(router, http.MethodGet, "/api/categories", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	if assert.Len(t, list, 2) {
		assert.Equal(t, "Category 1", list[0]["name"])
	}
}
