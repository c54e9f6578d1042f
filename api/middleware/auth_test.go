package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/maskeddeveloper/product-trial-master/pkg/auth"
	"github.com/maskeddeveloper/product-trial-master/pkg/config"
	"github.com/maskeddeveloper/product-trial-master/pkg/logger"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "storefront-api", ExpirationMinutes: 60}
}

func authedHandler(t *testing.T, gotUserID *string, gotAdmin *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUserID = UserIDFromContext(r.Context())
		*gotAdmin = IsAdminFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMissingHeaderIsUnauthorized(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	var userID string
	var isAdmin bool
	handler := Auth(testJWTConfig(), logg)(authedHandler(t, &userID, &isAdmin))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, userID)
}

func TestAuthBlankBearerIsUnauthorized(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	var userID string
	var isAdmin bool
	handler := Auth(testJWTConfig(), logg)(authedHandler(t, &userID, &isAdmin))

	for _, header := range []string{"Bearer", "Bearer   ", "bearer "} {
		t.Run(header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthGarbageTokenIsForbidden(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	var userID string
	var isAdmin bool
	handler := Auth(testJWTConfig(), logg)(authedHandler(t, &userID, &isAdmin))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, userID)
}

func TestAuthTokenSignedWithWrongSecretIsForbidden(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	var userID string
	var isAdmin bool
	handler := Auth(testJWTConfig(), logg)(authedHandler(t, &userID, &isAdmin))

	otherCfg := testJWTConfig()
	otherCfg.Secret = "other-secret"
	token, err := pkgauth.MintAccessToken(otherCfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "jane@example.com",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthValidTokenSeedsIdentity(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	var gotUserID string
	var gotAdmin bool
	handler := Auth(testJWTConfig(), logg)(authedHandler(t, &gotUserID, &gotAdmin))

	userID := uuid.New()
	token, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now(), pkgauth.AccessTokenPayload{
		UserID:  userID,
		Email:   "admin@admin.com",
		IsAdmin: true,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), gotUserID)
	assert.True(t, gotAdmin)
}
