package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"watchlist/internal/repository"
	"watchlist/internal/repository/sqlite"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "watchlist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return NewUserService(repo)
}

func TestLoginRequiresBothFields(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "123")
	require.ErrorIs(t, err, ErrCredentialsRequired)

	_, err = svc.Login(ctx, "test", "")
	require.ErrorIs(t, err, ErrCredentialsRequired)
}

func TestLoginBeforeProvisioning(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Login(context.Background(), "test", "123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProvisionAndLogin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	owner, err := svc.Provision(ctx, "test", "123")
	require.NoError(t, err)
	require.Equal(t, "test", owner.Username)
	require.Empty(t, owner.PasswordHash, "hash must never leave the service")

	user, err := svc.Login(ctx, "test", "123")
	require.NoError(t, err)
	require.Equal(t, owner.ID, user.ID)

	_, err = svc.Login(ctx, "test", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "other", "123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// exact match only
	_, err = svc.Login(ctx, "Test", "123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProvisionUpdatesExistingAccount(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	first, err := svc.Provision(ctx, "test", "123")
	require.NoError(t, err)

	second, err := svc.Provision(ctx, "admin", "secret")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "re-provisioning must not create a second row")

	_, err = svc.Login(ctx, "test", "123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := svc.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	require.Equal(t, first.ID, user.ID)
}

func TestUpdateName(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	owner, err := svc.Provision(ctx, "test", "123")
	require.NoError(t, err)

	require.ErrorIs(t, svc.UpdateName(ctx, owner.ID, ""), ErrInvalidInput)
	require.ErrorIs(t, svc.UpdateName(ctx, owner.ID, strings.Repeat("名", 21)), ErrInvalidInput)

	require.NoError(t, svc.UpdateName(ctx, owner.ID, strings.Repeat("名", 20)))

	got, err := svc.Owner(ctx)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("名", 20), got.Name)

	require.ErrorIs(t, svc.UpdateName(ctx, 999, "Test"), repository.ErrNotFound)
}
