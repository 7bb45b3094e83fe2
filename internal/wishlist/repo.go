package wishlist

import (
	"context"

	"github.com/angelmondragon/storefront/internal/repo"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists (user, product) wishlist pairs.
type Repository struct {
	repo.Base
}

// NewRepository binds a wishlist repository to the provided database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository that runs inside tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Bind(tx)}
}

// Insert stores the pair unless it already exists. It reports whether a row was written.
func (r *Repository) Insert(ctx context.Context, userID, productID uint64) (*models.WishlistItem, bool, error) {
	item := &models.WishlistItem{UserID: userID, ProductID: productID}
	res := r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Omit(clause.Associations).
		Create(item)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return item, res.RowsAffected > 0, nil
}

// FindByPair loads the item saved by userID for productID.
func (r *Repository) FindByPair(ctx context.Context, userID, productID uint64) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.DB(ctx).
		Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByID loads a wishlist item by primary key.
func (r *Repository) FindByID(ctx context.Context, id uint64) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.DB(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the item with id.
func (r *Repository) Delete(ctx context.Context, id uint64) error {
	return r.DB(ctx).Delete(&models.WishlistItem{}, "id = ?", id).Error
}

// ListByUser returns the user's items with their products, oldest first.
func (r *Repository) ListByUser(ctx context.Context, userID uint64) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.DB(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
