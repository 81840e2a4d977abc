package repository

import (
	"context"
	"errors"

	"tsmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product lookup misses.
var ErrProductNotFound = errors.New("product not found")

// ErrCategoryNotFound is returned when a category lookup misses.
var ErrCategoryNotFound = errors.New("category not found")

// ProductFilter narrows catalog listings. Zero values mean "no constraint".
type ProductFilter struct {
	CategoryID *uuid.UUID
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	MinXP      *int
	Size       string
	ActiveOnly bool
}

// ProductRepository resolves catalog products. The checkout engine depends on
// FindByID for price/xp/size resolution; the rest serves storefront browsing
// and admin CRUD.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	Create(ctx context.Context, product *entity.Product) error

	Update(ctx context.Context, product *entity.Product) error

	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context) (int64, error)
}

// CategoryRepository manages the catalog's category axis.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	List(ctx context.Context) ([]*entity.Category, error)

	Create(ctx context.Context, category *entity.Category) error

	Delete(ctx context.Context, id uuid.UUID) error
}
