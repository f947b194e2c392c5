package http

import (
	"encoding/json"
	"fmt"

	"github.com/akozadaev/po-api/internal/core/domain"
	"github.com/govalues/decimal"
)

// maxUnitPrice mirrors the NUMERIC(12,2) column capacity.
var maxUnitPrice = decimal.MustParse("9999999999.99")

const maxFieldLen = 255

// itemRequest is one line item of a create/update body. Pointer fields
// distinguish a missing key from a zero value.
type itemRequest struct {
	ID          *uint64      `json:"id"`
	Description *string      `json:"description"`
	Quantity    *int64       `json:"quantity"`
	UnitPrice   *json.Number `json:"unit_price"`
	CategoryID  *uint64      `json:"category_id"`
}

type orderRequest struct {
	Number    *string       `json:"po_number"`
	BuyerName *string       `json:"buyer_name"`
	Items     []itemRequest `json:"items"`
}

// validate runs the field-shape checks and converts the body into typed
// structures. Item ids are only carried over on the update path; a create
// body may not reference existing items. Existence of categories and items
// is checked later, by the service.
func (r *orderRequest) validate(allowItemIDs bool) (domain.OrderPatch, []domain.ItemSpec, error) {
	verr := domain.NewValidationError()

	patch := domain.OrderPatch{}
	if r.Number == nil || *r.Number == "" {
		verr.Add("po_number", "The po number field is required.")
	} else if len(*r.Number) > maxFieldLen {
		verr.Add("po_number", "The po number field must not be greater than 255 characters.")
	} else {
		patch.Number = *r.Number
	}
	if r.BuyerName == nil || *r.BuyerName == "" {
		verr.Add("buyer_name", "The buyer name field is required.")
	} else if len(*r.BuyerName) > maxFieldLen {
		verr.Add("buyer_name", "The buyer name field must not be greater than 255 characters.")
	} else {
		patch.BuyerName = *r.BuyerName
	}

	if len(r.Items) == 0 {
		verr.Add("items", "The items field is required.")
	}

	specs := make([]domain.ItemSpec, 0, len(r.Items))
	for i, item := range r.Items {
		spec := domain.ItemSpec{}
		if allowItemIDs {
			spec.ID = item.ID
		}

		if item.Description == nil || *item.Description == "" {
			verr.AddItem(i, "description", "The description field is required.")
		} else if len(*item.Description) > maxFieldLen {
			verr.AddItem(i, "description", "The description field must not be greater than 255 characters.")
		} else {
			spec.Description = *item.Description
		}

		if item.Quantity == nil {
			verr.AddItem(i, "quantity", "The quantity field is required.")
		} else {
			spec.Quantity = *item.Quantity
		}

		if item.UnitPrice == nil {
			verr.AddItem(i, "unit_price", "The unit price field is required.")
		} else {
			price, err := decimal.Parse(item.UnitPrice.String())
			switch {
			case err != nil:
				verr.AddItem(i, "unit_price", "The unit price field must be a number.")
			case price.IsNeg() || price.Cmp(maxUnitPrice) > 0:
				verr.AddItem(i, "unit_price",
					fmt.Sprintf("The unit price field must be between 0 and %s.", maxUnitPrice))
			default:
				spec.UnitPrice = price
			}
		}

		if item.CategoryID == nil {
			verr.AddItem(i, "category_id", "The category id field is required.")
		} else {
			spec.CategoryID = *item.CategoryID
		}

		specs = append(specs, spec)
	}

	if !verr.Empty() {
		return domain.OrderPatch{}, nil, verr
	}
	return patch, specs, nil
}

type bulkDeleteRequest struct {
	IDs []uint64 `json:"ids"`
}

func (r *bulkDeleteRequest) validate() error {
	if len(r.IDs) == 0 {
		verr := domain.NewValidationError()
		verr.Add("ids", "The ids field is required.")
		return verr
	}
	return nil
}
