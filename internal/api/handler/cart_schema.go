package handler

import (
	"time"

	"github.com/levelup/levelup-backend/internal/core/domain"
	"github.com/levelup/levelup-backend/internal/core/ports"
)

type cartItemRequest struct {
	ProductCode string `json:"codigo"   validate:"required"`
	Name        string `json:"nombre"   validate:"required"`
	UnitPrice   int64  `json:"precio"   validate:"required,gt=0"`
	Quantity    int    `json:"cantidad" validate:"required,min=1,max=99"`
}

type updateCartRequest struct {
	Items []cartItemRequest `json:"items" validate:"max=50,dive"`
}

type cartResponse struct {
	RUN       string            `json:"run"`
	Items     []domain.CartItem `json:"items"`
	Total     int64             `json:"total"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func toUpdateCartInput(req updateCartRequest, run string) ports.UpdateCartInput {
	items := make([]ports.CartItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.CartItemInput{
			ProductCode: it.ProductCode,
			Name:        it.Name,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return ports.UpdateCartInput{RUN: run, Items: items}
}

func toCartResponse(v *ports.CartView) cartResponse {
	items := v.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{
		RUN:       v.RUN,
		Items:     items,
		Total:     v.Total,
		UpdatedAt: v.UpdatedAt,
	}
}
