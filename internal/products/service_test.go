package product

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront/internal/policy"
	"github.com/angelmondragon/storefront/internal/repo/repotest"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	admin    = policy.Authenticated(1, "root", true)
	customer = policy.Authenticated(2, "alice", false)
)

func newTestService(t *testing.T) (Service, *Repository, *gorm.DB) {
	t.Helper()
	conn := repotest.NewDB(t)
	repository := NewRepository(conn)
	svc, err := NewService(repository, db.NewFromGorm(conn))
	require.NoError(t, err)
	return svc, repository, conn
}

func strPtr(s string) *string { return &s }

func TestCreateByAdmin(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), admin, CreateProductInput{
		Name:        "  Lamp ",
		Description: strPtr("brass"),
		Price:       decimal.RequireFromString("19.999"),
		Category:    strPtr("   "),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Lamp", created.Name)
	require.NotNil(t, created.Description)
	assert.Equal(t, "brass", *created.Description)
	assert.Nil(t, created.Category)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("20.00")))
}

func TestCreateDeniedForNonAdmin(t *testing.T) {
	svc, repository, _ := newTestService(t)
	ctx := context.Background()
	input := CreateProductInput{Name: "Lamp", Price: decimal.NewFromInt(5)}

	_, err := svc.Create(ctx, customer, input)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(err))

	_, err = svc.Create(ctx, policy.Anonymous(), input)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))

	count, err := repository.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, CreateProductInput{Name: " ", Price: decimal.NewFromInt(1)})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = svc.Create(ctx, admin, CreateProductInput{Name: "Lamp", Price: decimal.NewFromInt(-1)})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestDeleteDeniedForNonAdminRegardlessOfID(t *testing.T) {
	svc, repository, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, CreateProductInput{Name: "Lamp", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)

	for _, id := range []uint64{created.ID, 9999} {
		err := svc.Delete(ctx, customer, id)
		assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.CodeOf(err), "id %d", id)
	}

	count, err := repository.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDeleteMissingLeavesStoreUnchanged(t *testing.T) {
	svc, repository, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, CreateProductInput{Name: "Lamp", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)

	err = svc.Delete(ctx, admin, 9999)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))

	count, err := repository.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDeleteCascadesWishlistItems(t *testing.T) {
	svc, _, conn := newTestService(t)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}
	require.NoError(t, conn.Create(user).Error)
	created, err := svc.Create(ctx, admin, CreateProductInput{Name: "Lamp", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)
	require.NoError(t, conn.Create(&models.WishlistItem{UserID: user.ID, ProductID: created.ID}).Error)

	require.NoError(t, svc.Delete(ctx, admin, created.ID))

	var items int64
	require.NoError(t, conn.Model(&models.WishlistItem{}).Count(&items).Error)
	assert.Zero(t, items)

	_, err = svc.Get(ctx, created.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestGetAndListAll(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	empty, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	names := []string{"Lamp", "Chair", "Desk"}
	for _, name := range names {
		_, err := svc.Create(ctx, admin, CreateProductInput{Name: name, Price: decimal.NewFromInt(10)})
		require.NoError(t, err)
	}

	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(names))
	for i, p := range list {
		assert.Equal(t, names[i], p.Name)
	}

	got, err := svc.Get(ctx, list[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Chair", got.Name)

	_, err = svc.Get(ctx, 0)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(nil, nil)
	assert.Error(t, err)
	_, err = NewService(NewRepository(nil), nil)
	assert.Error(t, err)
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}
