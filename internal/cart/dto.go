package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/maskeddeveloper/product-trial-master/internal/products"
	"github.com/maskeddeveloper/product-trial-master/pkg/db/models"
)

// CartItemDTO is a cart line with its embedded product view.
type CartItemDTO struct {
	ID       uuid.UUID           `json:"id"`
	Product  products.ProductDTO `json:"product"`
	Quantity int                 `json:"quantity"`
}

// CartDTO is the expanded cart returned by every cart operation.
type CartDTO struct {
	ID        uuid.UUID     `json:"id"`
	Items     []CartItemDTO `json:"items"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// AddItemRequest adds a product to the cart; a repeated add merges quantities.
// An omitted quantity means one unit.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,gte=1"`
}

// UpdateItemRequest overwrites the quantity of an existing line. The product
// is addressed by the URL, not the body.
type UpdateItemRequest struct {
	ProductID uuid.UUID `json:"-"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

// RemoveItemRequest drops a product from the cart.
type RemoveItemRequest struct {
	ProductID uuid.UUID `json:"-"`
}

func fromModel(record *models.Cart) *CartDTO {
	if record == nil {
		return nil
	}
	items := make([]CartItemDTO, 0, len(record.Items))
	for i := range record.Items {
		item := record.Items[i]
		items = append(items, CartItemDTO{
			ID:       item.ID,
			Product:  *products.FromModel(&item.Product),
			Quantity: item.Quantity,
		})
	}
	return &CartDTO{
		ID:        record.ID,
		Items:     items,
		UpdatedAt: record.UpdatedAt,
	}
}
