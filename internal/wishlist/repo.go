package wishlist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maskeddeveloper/product-trial-master/pkg/db/models"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreate returns the user's wishlist, creating it on first access. Like
// the cart, the unique index on user_id absorbs concurrent first requests.
func (r *Repository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	if userID == uuid.Nil {
		return nil, gorm.ErrInvalidValue
	}

	if err := r.db.WithContext(ctx).
		Exec(`INSERT INTO wishlists (id, user_id, updated_at) VALUES (?, ?, ?) ON CONFLICT (user_id) DO NOTHING`,
			uuid.New(), userID, time.Now().UTC()).
		Error; err != nil {
		return nil, err
	}

	return r.FindByUserID(ctx, userID)
}

// FindByUserID loads the wishlist record only; items come from ListItems.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	var record models.Wishlist
	if err := r.db.WithContext(ctx).
		First(&record, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// AddItem inserts a wishlist entry and ignores duplicates.
func (r *Repository) AddItem(ctx context.Context, wishlistID, productID uuid.UUID) error {
	if wishlistID == uuid.Nil || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO wishlist_items (id, wishlist_id, product_id, created_at) VALUES (?, ?, ?, ?) ON CONFLICT (wishlist_id, product_id) DO NOTHING`,
			uuid.New(), wishlistID, productID, time.Now().UTC()).
		Error
}

// RemoveItem deletes the entry if it exists.
func (r *Repository) RemoveItem(ctx context.Context, wishlistID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&models.WishlistItem{}).
		Error
}

// ListItems returns the wishlist entries joined with their products, newest
// first.
func (r *Repository) ListItems(ctx context.Context, wishlistID uuid.UUID) ([]itemWithProduct, error) {
	var entries []models.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []itemWithProduct{}, nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ProductID)
	}

	var productRecords []models.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&productRecords).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Product, len(productRecords))
	for _, p := range productRecords {
		byID[p.ID] = p
	}

	out := make([]itemWithProduct, 0, len(entries))
	for _, entry := range entries {
		product, ok := byID[entry.ProductID]
		if !ok {
			continue
		}
		out = append(out, itemWithProduct{Item: entry, Product: product})
	}
	return out, nil
}

// Touch bumps the wishlist's updated_at after a mutation.
func (r *Repository) Touch(ctx context.Context, wishlistID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Wishlist{}).
		Where("id = ?", wishlistID).
		UpdateColumn("updated_at", at).Error
}
