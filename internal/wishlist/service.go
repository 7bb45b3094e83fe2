package wishlist

import (
	"context"
	"errors"

	"github.com/angelmondragon/storefront/internal/policy"
	product "github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/pkg/db"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	ProductRepo  *product.Repository
	DB           *db.Client
}

// Service is the Wishlist Store. Every operation is scoped to one user.
type Service interface {
	Add(ctx context.Context, userID, productID uint64) (*AddResult, error)
	Remove(ctx context.Context, requester policy.Identity, itemID uint64) error
	ListForUser(ctx context.Context, userID uint64) ([]WishlistItemDTO, error)
}

type service struct {
	wishlistRepo *Repository
	productRepo  *product.Repository
	db           *db.Client
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		productRepo:  params.ProductRepo,
		db:           params.DB,
	}, nil
}

// Add saves productID for userID. Adding a pair twice, including from two
// racing requests, leaves one row and reports OutcomeAlreadyPresent.
func (s *service) Add(ctx context.Context, userID, productID uint64) (*AddResult, error) {
	if userID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}

	var result *AddResult
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		exists, err := s.productRepo.WithTx(tx).Exists(ctx, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}

		txRepo := s.wishlistRepo.WithTx(tx)
		_, inserted, err := txRepo.Insert(ctx, userID, productID)
		if err != nil {
			if db.IsForeignKeyViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert wishlist item")
		}

		item, err := txRepo.FindByPair(ctx, userID, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist item")
		}

		outcome := OutcomeAlreadyPresent
		if inserted {
			outcome = OutcomeAdded
		}
		result = &AddResult{Item: newItemDTO(item), Outcome: outcome}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Remove deletes the item if the requester owns it. The item survives any
// failed attempt.
func (s *service) Remove(ctx context.Context, requester policy.Identity, itemID uint64) error {
	if err := policy.Check(requester, policy.ManageOwnWishlist).Err(); err != nil {
		return err
	}

	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.wishlistRepo.WithTx(tx)
		item, err := txRepo.FindByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "wishlist item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist item")
		}
		if item.UserID != requester.ID {
			return pkgerrors.New(pkgerrors.CodeNotOwner, "wishlist item belongs to another user")
		}
		if err := txRepo.Delete(ctx, item.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wishlist item")
		}
		return nil
	})
}

func (s *service) ListForUser(ctx context.Context, userID uint64) ([]WishlistItemDTO, error) {
	rows, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}
	out := make([]WishlistItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, newItemDTO(&rows[i]))
	}
	return out, nil
}
