package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maskeddeveloper/product-trial-master/internal/users"
	"github.com/maskeddeveloper/product-trial-master/pkg/config"
	"github.com/maskeddeveloper/product-trial-master/pkg/db"
	"github.com/maskeddeveloper/product-trial-master/pkg/enums"
	pkgerrors "github.com/maskeddeveloper/product-trial-master/pkg/errors"
)

func setupAuthTestDB(t *testing.T) *db.Client {
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

func testRegisterService(t *testing.T, client *db.Client) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             client,
		PasswordConfig: config.PasswordConfig{ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32},
		AdminConfig:    config.AdminConfig{Email: "admin@admin.com"},
	})
	require.NoError(t, err)
	return svc
}

func TestRegisterCreatesCustomerAccount(t *testing.T) {
	client := setupAuthTestDB(t)
	svc := testRegisterService(t, client)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username:  "jdoe",
		FirstName: "Jane",
		Email:     "Jane.Doe@Example.com",
		Password:  "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "jane.doe@example.com", user.Email)
	assert.Equal(t, "jdoe", user.Username)
	assert.False(t, user.IsAdmin)

	stored, err := users.NewRepository(client.DB()).FindByEmail(context.Background(), "jane.doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleCustomer, stored.Role)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
}

func TestRegisterGrantsAdminRoleToDesignatedEmail(t *testing.T) {
	client := setupAuthTestDB(t)
	svc := testRegisterService(t, client)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username:  "root",
		FirstName: "Ada",
		Email:     "admin@admin.com",
		Password:  "supersecret",
	})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	stored, err := users.NewRepository(client.DB()).FindByEmail(context.Background(), "admin@admin.com")
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, stored.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	client := setupAuthTestDB(t)
	svc := testRegisterService(t, client)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username:  "first",
		FirstName: "One",
		Email:     "dup@example.com",
		Password:  "password1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Username:  "second",
		FirstName: "Two",
		Email:     "dup@example.com",
		Password:  "password2",
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	client := setupAuthTestDB(t)
	svc := testRegisterService(t, client)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username:  "nopass",
		FirstName: "No",
		Email:     "nopass@example.com",
		Password:  "   ",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
