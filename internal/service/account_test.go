package service_test

import (
	"context"
	"strings"
	"testing"

	"cupcake-store/internal/apperr"
	"cupcake-store/internal/config"
	"cupcake-store/internal/model"
	"cupcake-store/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAlwaysCreatesUser(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	account, err := s.account.Register(ctx, " Ana ", " Ana@Example.com ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, account.Role)
	assert.Equal(t, "Ana", account.Name)
	assert.Equal(t, "ana@example.com", account.Email)

	var stored model.Account
	require.NoError(t, s.db.First(&stored, account.ID).Error)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.Equal(t, model.RoleUser, stored.Role)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "missing name", email: "a@example.com", password: "secret123"},
		{name: "missing email", userName: "Ana", password: "secret123"},
		{name: "missing password", userName: "Ana", email: "a@example.com"},
		{name: "short password", userName: "Ana", email: "a@example.com", password: "12345"},
		{name: "long password", userName: "Ana", email: "a@example.com", password: strings.Repeat("x", 73)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.account.Register(ctx, tt.userName, tt.email, tt.password)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.account.Register(ctx, "Ana", "ana@example.com", "secret123")
	require.NoError(t, err)

	_, err = s.account.Register(ctx, "Other Ana", "ANA@example.com", "secret456")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "email already registered", apperr.PublicMessage(err))
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.account.Register(ctx, "Ana", "ana@example.com", "secret123")
	require.NoError(t, err)

	account, err := s.account.Login(ctx, "ANA@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", account.Email)

	_, wrongPassword := s.account.Login(ctx, "ana@example.com", "secret124")
	_, unknownEmail := s.account.Login(ctx, "bob@example.com", "secret123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(wrongPassword))
	assert.Equal(t, apperr.KindOf(wrongPassword), apperr.KindOf(unknownEmail))
	assert.Equal(t, apperr.PublicMessage(wrongPassword), apperr.PublicMessage(unknownEmail))
}

func TestRequireAdmin(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	admin := testutil.CreateAccount(t, s.db, "admin@example.com", model.RoleAdmin)
	user := testutil.CreateAccount(t, s.db, "ana@example.com", model.RoleUser)

	got, err := s.account.RequireAdmin(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	_, err = s.account.RequireAdmin(ctx, user.ID)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	_, err = s.account.RequireAdmin(ctx, 0)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	_, err = s.account.RequireAdmin(ctx, 999)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	isAdmin, err := s.account.IsAdmin(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	_, err = s.account.IsAdmin(ctx, 999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestBootstrapAdminRunsOnce(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	admin := config.Admin{Name: "Administrador", Email: "Admin@SweetCupcakes.com", Password: "admin123"}

	created, err := s.account.BootstrapAdmin(ctx, admin)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.account.BootstrapAdmin(ctx, admin)
	require.NoError(t, err)
	assert.False(t, created)

	account, err := s.account.Login(ctx, "admin@sweetcupcakes.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, account.Role)
}

func TestBootstrapAdminEmailTaken(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.account.Register(ctx, "Squatter", "admin@sweetcupcakes.com", "secret123")
	require.NoError(t, err)

	_, err = s.account.BootstrapAdmin(ctx, config.Admin{Name: "Administrador", Email: "admin@sweetcupcakes.com", Password: "admin123"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
