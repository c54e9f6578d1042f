package wishlist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maskeddeveloper/product-trial-master/internal/products"
	"github.com/maskeddeveloper/product-trial-master/pkg/db/models"
	pkgerrors "github.com/maskeddeveloper/product-trial-master/pkg/errors"
)

// Service exposes business rules for wishlist management. Membership is a
// set: adds are idempotent and the same product never appears twice.
type Service interface {
	GetWishlist(ctx context.Context, userID uuid.UUID) (*WishlistDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*WishlistDTO, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, req RemoveItemRequest) (*WishlistDTO, error)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	ProductRepo  *products.Repository
	Now          func() time.Time
}

type service struct {
	wishlistRepo *Repository
	productRepo  *products.Repository
	now          func() time.Time
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		productRepo:  params.ProductRepo,
		now:          now,
	}, nil
}

// GetWishlist returns the expanded wishlist, creating an empty one on first
// access.
func (s *service) GetWishlist(ctx context.Context, userID uuid.UUID) (*WishlistDTO, error) {
	record, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, record)
}

// AddItem ensures the product exists and puts it on the wishlist. A repeated
// add leaves the single membership row in place.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*WishlistDTO, error) {
	if err := s.ensureProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	record, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.wishlistRepo.AddItem(ctx, record.ID, req.ProductID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add wishlist item")
	}
	if err := s.wishlistRepo.Touch(ctx, record.ID, s.now().UTC()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "touch wishlist")
	}
	return s.expand(ctx, record)
}

// RemoveItem validates the product still exists, then drops the membership.
// Removing a product that was never added succeeds.
func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, req RemoveItemRequest) (*WishlistDTO, error) {
	if err := s.ensureProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	record, err := s.findWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.wishlistRepo.RemoveItem(ctx, record.ID, req.ProductID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove wishlist item")
	}
	if err := s.wishlistRepo.Touch(ctx, record.ID, s.now().UTC()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "touch wishlist")
	}
	return s.expand(ctx, record)
}

func (s *service) getOrCreate(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	record, err := s.wishlistRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wishlist")
	}
	return record, nil
}

func (s *service) findWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	record, err := s.wishlistRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wishlist not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wishlist")
	}
	return record, nil
}

func (s *service) ensureProduct(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return nil
}

func (s *service) expand(ctx context.Context, record *models.Wishlist) (*WishlistDTO, error) {
	items, err := s.wishlistRepo.ListItems(ctx, record.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list wishlist items")
	}
	fresh, err := s.wishlistRepo.FindByUserID(ctx, record.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload wishlist")
	}
	row := wishlistRow{Record: *fresh, Items: items}
	return row.toDTO(), nil
}
