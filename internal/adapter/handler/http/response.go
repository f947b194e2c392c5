package http

import (
	"time"

	"github.com/akozadaev/po-api/internal/core/domain"
)

type categoryResp struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type itemResp struct {
	ID          uint64        `json:"id"`
	Description string        `json:"description"`
	Quantity    int64         `json:"quantity"`
	UnitPrice   jsonDecimal   `json:"unit_price"`
	CategoryID  uint64        `json:"category_id"`
	Category    *categoryResp `json:"category,omitempty"`
}

type orderResp struct {
	ID           uint64      `json:"id"`
	Number       string      `json:"po_number"`
	BuyerName    string      `json:"buyer_name"`
	Total        jsonDecimal `json:"total"`
	DateReceived time.Time   `json:"date_received"`
	DateUpdated  time.Time   `json:"date_updated"`
	Items        []itemResp  `json:"items,omitempty"`
}

type pageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

type orderPageResp struct {
	Data []orderResp `json:"data"`
	Meta pageMeta    `json:"meta"`
}

func newOrderResp(order *domain.Order) orderResp {
	resp := orderResp{
		ID:           order.ID,
		Number:       order.Number,
		BuyerName:    order.BuyerName,
		Total:        jsonDecimal(order.Total),
		DateReceived: order.CreatedAt,
		DateUpdated:  order.UpdatedAt,
	}
	for _, item := range order.Items {
		ir := itemResp{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   jsonDecimal(item.UnitPrice),
			CategoryID:  item.CategoryID,
		}
		if item.Category != nil {
			ir.Category = &categoryResp{ID: item.Category.ID, Name: item.Category.Name}
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}

func newOrderPageResp(page *domain.OrderPage) orderPageResp {
	resp := orderPageResp{
		Data: make([]orderResp, 0, len(page.Orders)),
		Meta: pageMeta{
			CurrentPage: page.Page,
			PerPage:     page.PageSize,
			Total:       page.Total,
			LastPage:    page.LastPage(),
		},
	}
	for _, order := range page.Orders {
		resp.Data = append(resp.Data, newOrderResp(order))
	}
	return resp
}
