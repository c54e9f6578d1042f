package products

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maskeddeveloper/product-trial-master/pkg/db"
	"github.com/maskeddeveloper/product-trial-master/pkg/db/models"
	"github.com/maskeddeveloper/product-trial-master/pkg/enums"
	pkgerrors "github.com/maskeddeveloper/product-trial-master/pkg/errors"
)

// Service exposes catalog reads for everyone and mutations for admins. The
// authorization gate lives in the middleware; the service assumes callers are
// already vetted.
type Service interface {
	List(ctx context.Context) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceParams groups dependencies for the product service. Now is swappable
// so tests can pin the epoch timestamps.
type ServiceParams struct {
	Repo *Repository
	Now  func() time.Time
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService builds a product service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, now: now}, nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return FromModels(records), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	record, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(record), nil
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	status, err := enums.ParseInventoryStatus(strings.TrimSpace(req.InventoryStatus))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inventory status")
	}
	if req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	epoch := s.now().UTC().Unix()
	record := &models.Product{
		Code:              strings.TrimSpace(req.Code),
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		Image:             req.Image,
		Category:          req.Category,
		Price:             req.Price,
		Quantity:          req.Quantity,
		InternalReference: req.InternalReference,
		ShellID:           req.ShellID,
		InventoryStatus:   status,
		Rating:            req.Rating,
		CreatedAt:         epoch,
		UpdatedAt:         epoch,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(record), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error) {
	record, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyPatch(record, req); err != nil {
		return nil, err
	}
	record.UpdatedAt = s.now().UTC().Unix()

	if err := s.repo.Save(ctx, record); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return FromModel(record), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return record, nil
}

func applyPatch(record *models.Product, req UpdateProductRequest) error {
	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "code must not be empty")
		}
		record.Code = code
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		record.Name = name
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.Image != nil {
		record.Image = *req.Image
	}
	if req.Category != nil {
		record.Category = *req.Category
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		record.Price = *req.Price
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
		}
		record.Quantity = *req.Quantity
	}
	if req.InternalReference != nil {
		record.InternalReference = *req.InternalReference
	}
	if req.ShellID != nil {
		record.ShellID = *req.ShellID
	}
	if req.InventoryStatus != nil {
		status, err := enums.ParseInventoryStatus(strings.TrimSpace(*req.InventoryStatus))
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid inventory status")
		}
		record.InventoryStatus = status
	}
	if req.Rating != nil {
		if *req.Rating < 0 || *req.Rating > 5 {
			return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
		}
		record.Rating = *req.Rating
	}
	return nil
}
