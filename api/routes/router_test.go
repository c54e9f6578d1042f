package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maskeddeveloper/product-trial-master/internal/auth"
	"github.com/maskeddeveloper/product-trial-master/internal/cart"
	"github.com/maskeddeveloper/product-trial-master/internal/products"
	"github.com/maskeddeveloper/product-trial-master/internal/users"
	"github.com/maskeddeveloper/product-trial-master/internal/wishlist"
	pkgauth "github.com/maskeddeveloper/product-trial-master/pkg/auth"
	"github.com/maskeddeveloper/product-trial-master/pkg/config"
	"github.com/maskeddeveloper/product-trial-master/pkg/db/models"
	"github.com/maskeddeveloper/product-trial-master/pkg/enums"
	"github.com/maskeddeveloper/product-trial-master/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubRegisterService struct{}

func (stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New(), Username: req.Username, Email: req.Email}, nil
}

type stubProductService struct{}

func (stubProductService) List(ctx context.Context) ([]products.ProductDTO, error) {
	return []products.ProductDTO{}, nil
}

func (stubProductService) Get(ctx context.Context, id uuid.UUID) (*products.ProductDTO, error) {
	return &products.ProductDTO{ID: id}, nil
}

func (stubProductService) Create(ctx context.Context, req products.CreateProductRequest) (*products.ProductDTO, error) {
	return &products.ProductDTO{ID: uuid.New(), Code: req.Code, Name: req.Name}, nil
}

func (stubProductService) Update(ctx context.Context, id uuid.UUID, req products.UpdateProductRequest) (*products.ProductDTO, error) {
	return &products.ProductDTO{ID: id}, nil
}

func (stubProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubCartService struct{}

func (stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (*cart.CartDTO, error) {
	return &cart.CartDTO{ID: uuid.New(), Items: []cart.CartItemDTO{}}, nil
}

func (stubCartService) AddItem(ctx context.Context, userID uuid.UUID, req cart.AddItemRequest) (*cart.CartDTO, error) {
	return &cart.CartDTO{ID: uuid.New(), Items: []cart.CartItemDTO{}}, nil
}

func (stubCartService) UpdateItem(ctx context.Context, userID uuid.UUID, req cart.UpdateItemRequest) (*cart.CartDTO, error) {
	return &cart.CartDTO{ID: uuid.New(), Items: []cart.CartItemDTO{}}, nil
}

func (stubCartService) RemoveItem(ctx context.Context, userID uuid.UUID, req cart.RemoveItemRequest) (*cart.CartDTO, error) {
	return &cart.CartDTO{ID: uuid.New(), Items: []cart.CartItemDTO{}}, nil
}

type stubWishlistService struct{}

func (stubWishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) (*wishlist.WishlistDTO, error) {
	return &wishlist.WishlistDTO{ID: uuid.New(), Items: []wishlist.WishlistItemDTO{}}, nil
}

func (stubWishlistService) AddItem(ctx context.Context, userID uuid.UUID, req wishlist.AddItemRequest) (*wishlist.WishlistDTO, error) {
	return &wishlist.WishlistDTO{ID: uuid.New(), Items: []wishlist.WishlistItemDTO{}}, nil
}

func (stubWishlistService) RemoveItem(ctx context.Context, userID uuid.UUID, req wishlist.RemoveItemRequest) (*wishlist.WishlistDTO, error) {
	return &wishlist.WishlistDTO{ID: uuid.New(), Items: []wishlist.WishlistItemDTO{}}, nil
}

type stubUserLoader struct {
	user *models.User
}

func (s stubUserLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Env: "test", Port: "0"},
		JWT:   config.JWTConfig{Secret: "secret", Issuer: "storefront-api", ExpirationMinutes: 60},
		Admin: config.AdminConfig{Email: "admin@admin.com"},
	}
}

func newTestRouter(cfg *config.Config, loader stubUserLoader) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(RouterParams{
		Config:   cfg,
		Logger:   logg,
		DB:       stubPinger{},
		Users:    loader,
		Auth:     stubAuthService{},
		Register: stubRegisterService{},
		Products: stubProductService{},
		Cart:     stubCartService{},
		Wishlist: stubWishlistService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, userID uuid.UUID, email string, isAdmin bool) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestCatalogReadsArePublic(t *testing.T) {
	router := newTestRouter(testConfig(), stubUserLoader{})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public product list got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/products/"+uuid.NewString(), nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public product detail got %d", resp.Code)
	}
}

func TestAccountCreateReturnsCreated(t *testing.T) {
	router := newTestRouter(testConfig(), stubUserLoader{})

	body := `{"username":"jdoe","firstname":"Jane","email":"jane@example.com","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/account", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for account creation got %d", resp.Code)
	}
}

func TestCartRequiresToken(t *testing.T) {
	router := newTestRouter(testConfig(), stubUserLoader{})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestCartSucceedsWithToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubUserLoader{})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, uuid.New(), "jane@example.com", false))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authed cart got %d", resp.Code)
	}
}

func TestProductMutationsRequireDesignatedAdmin(t *testing.T) {
	cfg := testConfig()
	customer := &models.User{ID: uuid.New(), Email: "jane@example.com", Role: enums.UserRoleCustomer}
	admin := &models.User{ID: uuid.New(), Email: "admin@admin.com", Role: enums.UserRoleAdmin}
	body := `{"code":"SKU-1","name":"Widget","price":"9.99","quantity":1,"inventoryStatus":"IN_STOCK"}`

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	newTestRouter(cfg, stubUserLoader{}).ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, customer.ID, customer.Email, false))
	resp = httptest.NewRecorder()
	newTestRouter(cfg, stubUserLoader{user: customer}).ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, admin.ID, admin.Email, true))
	resp = httptest.NewRecorder()
	newTestRouter(cfg, stubUserLoader{user: admin}).ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for designated admin got %d", resp.Code)
	}
}

func TestWishlistRequiresToken(t *testing.T) {
	router := newTestRouter(testConfig(), stubUserLoader{})

	req := httptest.NewRequest(http.MethodGet, "/api/wishlist", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(testConfig(), stubUserLoader{})

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}
