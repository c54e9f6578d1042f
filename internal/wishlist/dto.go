package wishlist

import (
	"time"

	"github.com/google/uuid"

	"github.com/maskeddeveloper/product-trial-master/internal/products"
	"github.com/maskeddeveloper/product-trial-master/pkg/db/models"
)

// WishlistItemDTO wraps the product view included in a wishlist row.
type WishlistItemDTO struct {
	ID      uuid.UUID           `json:"id"`
	Product products.ProductDTO `json:"product"`
	AddedAt time.Time           `json:"addedAt"`
}

// WishlistDTO is the expanded wishlist returned by every wishlist operation.
type WishlistDTO struct {
	ID        uuid.UUID         `json:"id"`
	Items     []WishlistItemDTO `json:"items"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// AddItemRequest puts a product on the wishlist; repeated adds are no-ops.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
}

// RemoveItemRequest takes a product off the wishlist. The product is
// addressed by the URL, not the body.
type RemoveItemRequest struct {
	ProductID uuid.UUID `json:"-"`
}

type wishlistRow struct {
	Record models.Wishlist
	Items  []itemWithProduct
}

type itemWithProduct struct {
	Item    models.WishlistItem
	Product models.Product
}

func (w wishlistRow) toDTO() *WishlistDTO {
	items := make([]WishlistItemDTO, 0, len(w.Items))
	for i := range w.Items {
		entry := w.Items[i]
		items = append(items, WishlistItemDTO{
			ID:      entry.Item.ID,
			Product: *products.FromModel(&entry.Product),
			AddedAt: entry.Item.CreatedAt,
		})
	}
	return &WishlistDTO{
		ID:        w.Record.ID,
		Items:     items,
		UpdatedAt: w.Record.UpdatedAt,
	}
}
