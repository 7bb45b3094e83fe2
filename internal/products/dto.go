package product

import (
	"strings"
	"time"

	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the catalog entry returned to clients.
type ProductDTO struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    *string         `json:"category,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateProductInput is the validated payload for a new catalog entry.
type CreateProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Category    *string
}

func (in CreateProductInput) toModel() *models.Product {
	return &models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: trimmedOrNil(in.Description),
		Price:       in.Price.Round(2),
		Category:    trimmedOrNil(in.Category),
	}
}

// NewProductDTO maps a persisted product to its transport shape.
func NewProductDTO(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
	}
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
