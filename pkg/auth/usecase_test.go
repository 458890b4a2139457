package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruitflow/pkg/auth"
	"github.com/artem13815/recruitflow/pkg/repository/memory"
	"github.com/artem13815/recruitflow/pkg/security/jwt"
	"github.com/artem13815/recruitflow/pkg/tokenstore"
)

func newAuthService(t *testing.T) (auth.UseCase, auth.UserRepository) {
	t.Helper()
	store := memory.NewStore()
	gen := jwt.NewGenerator("test-secret", "recruitflow", time.Hour)
	return auth.NewService(store.Users(), gen, tokenstore.NewMemory()), store.Users()
}

func TestRegister_CreatesAdminWithNewOrganization(t *testing.T) {
	uc, _ := newAuthService(t)
	ctx := context.Background()

	res, err := uc.Register(ctx, "Anna@Example.com", "secret-password", "Anna")
	require.NoError(t, err)

	assert.Equal(t, "anna@example.com", res.User.Email)
	assert.Equal(t, auth.RoleAdmin, res.User.Role)
	assert.NotEqual(t, uuid.Nil, res.User.OrganizationID)
	assert.True(t, res.User.IsActive)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	// Хэш пароля, а не сам пароль.
	assert.NotEqual(t, "secret-password", res.User.PasswordHash)
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	uc, _ := newAuthService(t)
	_, err := uc.Register(context.Background(), "anna@example.com", "short", "Anna")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, "anna@example.com", "secret-password", "Anna")
	require.NoError(t, err)
	_, err = uc.Register(ctx, "ANNA@example.com", "another-password", "Anna")
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	uc, _ := newAuthService(t)
	ctx := context.Background()

	reg, err := uc.Register(ctx, "anna@example.com", "secret-password", "Anna")
	require.NoError(t, err)

	res, err := uc.Login(ctx, "anna@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	require.NotNil(t, res.User.LastLoginAt)

	_, err = uc.Login(ctx, "anna@example.com", "wrong-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = uc.Login(ctx, "nobody@example.com", "secret-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	uc, users := newAuthService(t)
	ctx := context.Background()

	reg, err := uc.Register(ctx, "anna@example.com", "secret-password", "Anna")
	require.NoError(t, err)

	u := reg.User
	u.IsActive = false
	require.NoError(t, users.Update(ctx, u))

	_, err = uc.Login(ctx, "anna@example.com", "secret-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	uc, _ := newAuthService(t)
	ctx := context.Background()

	reg, err := uc.Register(ctx, "anna@example.com", "secret-password", "Anna")
	require.NoError(t, err)

	res, err := uc.Refresh(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	assert.NotEqual(t, reg.RefreshToken, res.RefreshToken)

	// Старый токен погашен ротацией.
	_, err = uc.Refresh(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefresh_UnknownToken(t *testing.T) {
	uc, _ := newAuthService(t)
	_, err := uc.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	uc, _ := newAuthService(t)
	ctx := context.Background()

	reg, err := uc.Register(ctx, "anna@example.com", "secret-password", "Anna")
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, reg.RefreshToken))
	_, err = uc.Refresh(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestMe(t *testing.T) {
	uc, _ := newAuthService(t)
	ctx := context.Background()

	reg, err := uc.Register(ctx, "anna@example.com", "secret-password", "Anna")
	require.NoError(t, err)

	u, err := uc.Me(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", u.Email)

	_, err = uc.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, auth.ErrNotFound)
}
