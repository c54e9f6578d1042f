package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maskeddeveloper/product-trial-master/pkg/db/models"
)

// Repository encapsulates cart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreate returns the user's cart, creating it on first access. The
// insert tolerates a concurrent winner: whoever lost the race reads back the
// surviving row, so two parallel first requests converge on one cart.
func (r *Repository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, gorm.ErrInvalidValue
	}

	if err := r.db.WithContext(ctx).
		Exec(`INSERT INTO carts (id, user_id, updated_at) VALUES (?, ?, ?) ON CONFLICT (user_id) DO NOTHING`,
			uuid.New(), userID, time.Now().UTC()).
		Error; err != nil {
		return nil, err
	}

	return r.FindByUserID(ctx, userID)
}

// FindByUserID loads the cart with its items and their products.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var record models.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&record, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// UpsertItem inserts a line or merges the quantity into an existing one.
func (r *Repository) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO cart_items (id, cart_id, product_id, quantity) VALUES (?, ?, ?, ?)
ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + excluded.quantity`,
			uuid.New(), cartID, productID, quantity).
		Error
}

// FindItem loads a single cart line.
func (r *Repository) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	var record models.CartItem
	if err := r.db.WithContext(ctx).
		First(&record, "cart_id = ? AND product_id = ?", cartID, productID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// SetItemQuantity overwrites the quantity of an existing line. The boolean
// reports whether the line existed.
func (r *Repository) SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		UpdateColumn("quantity", quantity)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveItem deletes the line if it exists.
func (r *Repository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).
		Error
}

// Touch bumps the cart's updated_at after a mutation.
func (r *Repository) Touch(ctx context.Context, cartID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		UpdateColumn("updated_at", at).Error
}
