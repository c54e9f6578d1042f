package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maskeddeveloper/product-trial-master/pkg/enums"
)

// Product represents a catalog listing. Timestamps are integer epoch seconds
// and are set explicitly by every mutating operation rather than by a
// persistence hook.
type Product struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Code              string                `gorm:"column:code;not null;uniqueIndex"`
	Name              string                `gorm:"column:name;not null"`
	Description       string                `gorm:"column:description;not null"`
	Image             string                `gorm:"column:image;not null"`
	Category          string                `gorm:"column:category;not null"`
	Price             decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity          int                   `gorm:"column:quantity;not null;default:0"`
	InternalReference string                `gorm:"column:internal_reference;not null"`
	ShellID           int                   `gorm:"column:shell_id;not null"`
	InventoryStatus   enums.InventoryStatus `gorm:"column:inventory_status;not null"`
	Rating            float64               `gorm:"column:rating;not null;default:0"`
	CreatedAt         int64                 `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt         int64                 `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}
