package models

import (
	"github.com/google/uuid"
)

// CartItem links a cart to a product with a quantity of at least 1. The unique
// index over (cart_id, product_id) backs the merge semantics: repeated adds
// increment the single row instead of duplicating it.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:cart_items_cart_product_key"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:cart_items_cart_product_key"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Product   Product   `gorm:"foreignKey:ProductID"`
}
