package users

import (
	"context"
	"sync"
	"testing"

	"github.com/angelmondragon/storefront/internal/repo/repotest"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn := repotest.NewDB(t)
	repository := NewRepository(conn)
	svc, err := NewService(ServiceParams{Repo: repository, DB: db.NewFromGorm(conn)})
	require.NoError(t, err)
	return svc, repository
}

func TestRegisterCreatesNonAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "A@X.com", PasswordHash: "$argon2id$hash"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.False(t, user.IsAdmin)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, repository := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.com", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Email: "other@x.com", PasswordHash: "h2"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUsernameTaken, pkgerrors.CodeOf(err))

	count, err := repository.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRegisterUsernameIsCaseSensitive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Username: "Alice", Email: "b@x.com", PasswordHash: "h"})
	require.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "bobby", Email: "A@x.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeEmailTaken, pkgerrors.CodeOf(err))
}

func TestRegisterConcurrentSameUsernameHasOneWinner(t *testing.T) {
	svc, repository := newTestService(t)
	ctx := context.Background()

	const attempts = 4
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, RegisterInput{
				Username:     "racer",
				Email:        "racer" + string(rune('a'+i)) + "@x.com",
				PasswordHash: "h",
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.Equal(t, pkgerrors.CodeUsernameTaken, pkgerrors.CodeOf(err))
	}
	assert.Equal(t, 1, winners)

	count, err := repository.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMapCreateErrorFromConstraint(t *testing.T) {
	conn := repotest.NewDB(t)
	ctx := context.Background()
	repository := NewRepository(conn)

	_, err := repository.Create(ctx, CreateUserDTO{Username: "dup", Email: "d@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repository.Create(ctx, CreateUserDTO{Username: "dup", Email: "e@x.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUsernameTaken, pkgerrors.CodeOf(mapCreateError(err)))

	_, err = repository.Create(ctx, CreateUserDTO{Username: "fresh", Email: "d@x.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeEmailTaken, pkgerrors.CodeOf(mapCreateError(err)))
}

func TestCreateAdminSetsFlag(t *testing.T) {
	svc, _ := newTestService(t)
	admin, err := svc.CreateAdmin(context.Background(), RegisterInput{Username: "root", Email: "root@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
}

func TestFindByUsernameAndID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	byName, err := svc.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, created.ID, byName.ID)

	byID, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)

	missing, err := svc.FindByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = svc.FindByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Register(context.Background(), RegisterInput{Username: " ", Email: "a@x.com", PasswordHash: "h"})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	_, err = svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "a@x.com"})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}
