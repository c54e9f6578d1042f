package models

import (
	"time"

	"github.com/google/uuid"
)

// Wishlist is the per-user wishlist, created lazily on first access.
type Wishlist struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:wishlists_user_id_key"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}
