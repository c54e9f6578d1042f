package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the per-user cart, created lazily on first access. The unique index
// on user_id is what keeps concurrent first-access requests from creating two
// carts for one user.
type Cart struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:carts_user_id_key"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null"`
}
