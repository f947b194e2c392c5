package domain_test

import (
	"testing"

	"github.com/akozadaev/po-api/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItemsTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []domain.ItemSpec
		expTotal string
	}{
		{
			name: "single item",
			items: []domain.ItemSpec{
				{ItemPatch: domain.ItemPatch{Quantity: 1, UnitPrice: decimal.MustParse("10")}},
			},
			expTotal: "10",
		},
		{
			name: "two items",
			items: []domain.ItemSpec{
				{ItemPatch: domain.ItemPatch{Quantity: 1, UnitPrice: decimal.MustParse("10")}},
				{ItemPatch: domain.ItemPatch{Quantity: 2, UnitPrice: decimal.MustParse("5")}},
			},
			expTotal: "20",
		},
		{
			name: "no floating point drift",
			items: []domain.ItemSpec{
				{ItemPatch: domain.ItemPatch{Quantity: 3, UnitPrice: decimal.MustParse("19.99")}},
				{ItemPatch: domain.ItemPatch{Quantity: 10, UnitPrice: decimal.MustParse("0.1")}},
			},
			expTotal: "60.97",
		},
		{
			name:     "empty set",
			items:    nil,
			expTotal: "0",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			total, err := domain.ItemsTotal(test.items)
			assert.NoError(t, err)
			assert.Zero(t, total.Cmp(decimal.MustParse(test.expTotal)))
		})
	}
}

func TestOrderPage_LastPage(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		expLast int
	}{
		{name: "empty listing still has one page", total: 0, expLast: 1},
		{name: "exact multiple", total: 20, expLast: 2},
		{name: "partial last page", total: 25, expLast: 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			page := domain.OrderPage{Total: test.total, PageSize: 10}
			assert.Equal(t, test.expLast, page.LastPage())
		})
	}
}
