package wishlist

import (
	"time"

	product "github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/pkg/db/models"
)

// Outcome reports what Add did. A duplicate add is not an error.
type Outcome string

const (
	OutcomeAdded          Outcome = "added"
	OutcomeAlreadyPresent Outcome = "already_present"
)

// WishlistItemDTO is a saved product as returned to its owner.
type WishlistItemDTO struct {
	ID        uint64              `json:"id"`
	UserID    uint64              `json:"user_id"`
	ProductID uint64              `json:"product_id"`
	Product   *product.ProductDTO `json:"product,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// AddResult carries the stored item and whether this call created it.
type AddResult struct {
	Item    WishlistItemDTO `json:"item"`
	Outcome Outcome         `json:"outcome"`
}

func newItemDTO(item *models.WishlistItem) WishlistItemDTO {
	return WishlistItemDTO{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Product:   product.NewProductDTO(item.Product),
		CreatedAt: item.CreatedAt,
	}
}
