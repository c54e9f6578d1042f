package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem links a wishlist to a product. Membership is a set: the unique
// index over (wishlist_id, product_id) makes repeated adds a no-op.
type WishlistItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	WishlistID uuid.UUID `gorm:"column:wishlist_id;type:uuid;not null;uniqueIndex:wishlist_items_wishlist_product_key"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:wishlist_items_wishlist_product_key"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
