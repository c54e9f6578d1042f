package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maskeddeveloper/product-trial-master/internal/users"
	"github.com/maskeddeveloper/product-trial-master/pkg/config"
	"github.com/maskeddeveloper/product-trial-master/pkg/db"
	"github.com/maskeddeveloper/product-trial-master/pkg/db/models"
	"github.com/maskeddeveloper/product-trial-master/pkg/enums"
	"github.com/maskeddeveloper/product-trial-master/pkg/logger"
)

func setupAdminTestDB(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	client, err := db.NewSQLite(context.Background(), dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  first_name TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'customer',
  created_at DATETIME,
  updated_at DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);
CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username);`
	require.NoError(t, client.DB().Exec(usersTable).Error)

	return client
}

func seedUser(t *testing.T, client *db.Client, email string, role enums.UserRole) *models.User {
	t.Helper()
	user, err := users.NewRepository(client.DB()).Create(context.Background(), users.CreateUserDTO{
		Username:     email,
		FirstName:    "Test",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	})
	require.NoError(t, err)
	return user
}

func adminTestHandler(t *testing.T, client *db.Client) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test"})
	adminCfg := config.AdminConfig{Email: "admin@admin.com"}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return RequireAdmin(users.NewRepository(client.DB()), adminCfg, logg)(next)
}

func requestAs(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	if userID != "" {
		req = req.WithContext(WithIdentity(req.Context(), userID, "", false))
	}
	return req
}

func TestRequireAdminAllowsDesignatedAdmin(t *testing.T) {
	client := setupAdminTestDB(t)
	admin := seedUser(t, client, "admin@admin.com", enums.UserRoleAdmin)
	handler := adminTestHandler(t, client)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(admin.ID.String()))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireAdminRejectsCustomer(t *testing.T) {
	client := setupAdminTestDB(t)
	customer := seedUser(t, client, "jane@example.com", enums.UserRoleCustomer)
	handler := adminTestHandler(t, client)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(customer.ID.String()))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminRejectsAdminRoleWithoutDesignatedEmail(t *testing.T) {
	client := setupAdminTestDB(t)
	impostor := seedUser(t, client, "other@example.com", enums.UserRoleAdmin)
	handler := adminTestHandler(t, client)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(impostor.ID.String()))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminDeletedUserIsNotFound(t *testing.T) {
	client := setupAdminTestDB(t)
	handler := adminTestHandler(t, client)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(uuid.NewString()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequireAdminWithoutIdentityIsUnauthorized(t *testing.T) {
	client := setupAdminTestDB(t)
	handler := adminTestHandler(t, client)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
