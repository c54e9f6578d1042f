package cart

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

// Service exposes business rules for cart management. Every operation is
// scoped to the authenticated user; carts are never addressed by ID from the
// outside.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartDTO, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, req UpdateItemRequest) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, req RemoveItemRequest) (*CartDTO, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo    *Repository
	ProductRepo *products.Repository
	Now         func() time.Time
}

type service struct {
	cartRepo    *Repository
	productRepo *products.Repository
	now         func() time.Time
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		now:         now,
	}, nil
}

// GetCart returns the expanded cart, creating an empty one on first access.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	record, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return fromModel(record), nil
}

// AddItem merges the requested quantity into the cart. Adding a product that
// is already present increments the existing line instead of duplicating it.
// A zero quantity means the caller omitted it and defaults to one unit.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartDTO, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if err := s.ensureProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	record, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.UpsertItem(ctx, record.ID, req.ProductID, quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert cart item")
	}
	return s.finish(ctx, userID, record.ID)
}

// UpdateItem overwrites the quantity of a line that must already exist.
func (s *service) UpdateItem(ctx context.Context, userID uuid.UUID, req UpdateItemRequest) (*CartDTO, error) {
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if req.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	record, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.cartRepo.SetItemQuantity(ctx, record.ID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}
	return s.finish(ctx, userID, record.ID)
}

// RemoveItem drops the line regardless of prior state. Removing a product
// that was never added succeeds and leaves the cart unchanged, but the cart
// itself must exist.
func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, req RemoveItemRequest) (*CartDTO, error) {
	if req.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	record, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.RemoveItem(ctx, record.ID, req.ProductID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}
	return s.finish(ctx, userID, record.ID)
}

func (s *service) getOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	record, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return record, nil
}

func (s *service) findCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	record, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
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

func (s *service) finish(ctx context.Context, userID, cartID uuid.UUID) (*CartDTO, error) {
	if err := s.cartRepo.Touch(ctx, cartID, s.now().UTC()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "touch cart")
	}
	record, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload cart")
	}
	return fromModel(record), nil
}
