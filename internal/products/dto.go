package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maskeddeveloper/product-trial-master/pkg/db/models"
	"github.com/maskeddeveloper/product-trial-master/pkg/enums"
)

// ProductDTO is the catalog transport shape. Timestamps are epoch seconds.
type ProductDTO struct {
	ID                uuid.UUID             `json:"id"`
	Code              string                `json:"code"`
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	Image             string                `json:"image"`
	Category          string                `json:"category"`
	Price             decimal.Decimal       `json:"price"`
	Quantity          int                   `json:"quantity"`
	InternalReference string                `json:"internalReference"`
	ShellID           int                   `json:"shellId"`
	InventoryStatus   enums.InventoryStatus `json:"inventoryStatus"`
	Rating            float64               `json:"rating"`
	CreatedAt         int64                 `json:"createdAt"`
	UpdatedAt         int64                 `json:"updatedAt"`
}

// CreateProductRequest is the admin payload for a new listing.
type CreateProductRequest struct {
	Code              string          `json:"code" validate:"required"`
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description"`
	Image             string          `json:"image"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price" validate:"required"`
	Quantity          int             `json:"quantity" validate:"gte=0"`
	InternalReference string          `json:"internalReference"`
	ShellID           int             `json:"shellId"`
	InventoryStatus   string          `json:"inventoryStatus" validate:"required"`
	Rating            float64         `json:"rating" validate:"gte=0,lte=5"`
}

// UpdateProductRequest carries a partial update; nil fields are left untouched.
type UpdateProductRequest struct {
	Code              *string          `json:"code,omitempty"`
	Name              *string          `json:"name,omitempty"`
	Description       *string          `json:"description,omitempty"`
	Image             *string          `json:"image,omitempty"`
	Category          *string          `json:"category,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	Quantity          *int             `json:"quantity,omitempty"`
	InternalReference *string          `json:"internalReference,omitempty"`
	ShellID           *int             `json:"shellId,omitempty"`
	InventoryStatus   *string          `json:"inventoryStatus,omitempty"`
	Rating            *float64         `json:"rating,omitempty"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		Description:       p.Description,
		Image:             p.Image,
		Category:          p.Category,
		Price:             p.Price,
		Quantity:          p.Quantity,
		InternalReference: p.InternalReference,
		ShellID:           p.ShellID,
		InventoryStatus:   p.InventoryStatus,
		Rating:            p.Rating,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func FromModels(records []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(records))
	for i := range records {
		out = append(out, *FromModel(&records[i]))
	}
	return out
}
