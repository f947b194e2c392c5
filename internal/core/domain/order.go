package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// Order is a purchase order header. Total is always derived from the
// owned items, never taken from client input as-is.
type Order struct {
	ID        uint64
	Number    string
	BuyerName string
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []*OrderItem
}

type OrderItem struct {
	ID          uint64
	OrderID     uint64
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	CategoryID  uint64
	Category    *Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemPatch carries exactly the item fields a client may set. The owning
// order id is not part of it and cannot be changed from a request.
type ItemPatch struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	CategoryID  uint64
}

// ItemSpec is one requested line item. A nil ID marks a new item;
// an ID that does not belong to the target order is treated the same way.
type ItemSpec struct {
	ID *uint64
	ItemPatch
}

// OrderPatch carries the header fields an update replaces.
type OrderPatch struct {
	Number    string
	BuyerName string
}

// OrderPage is one page of the order listing.
type OrderPage struct {
	Orders   []*Order
	Total    int64
	Page     int
	PageSize int
}

func (p *OrderPage) LastPage() int {
	if p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// ItemsTotal sums quantity × unit price over the given specs with exact
// decimal arithmetic, rounded to two fraction digits.
func ItemsTotal(items []ItemSpec) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		qty, err := decimal.New(item.Quantity, 0)
		if err != nil {
			return decimal.Decimal{}, err
		}
		line, err := item.UnitPrice.Mul(qty)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total, err = total.Add(line)
		if err != nil {
			return decimal.Decimal{}, err
		}
	}
	return total.Round(2), nil
}
