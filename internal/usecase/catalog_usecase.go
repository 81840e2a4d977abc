package usecase

import (
	"context"

	"tsmarket/internal/domain/entity"
	"tsmarket/internal/domain/repository"

	"github.com/google/uuid"
)

// ProductInput carries the fields for creating or replacing a product.
type ProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"min=0"`
	XPReward    int      `json:"xp_reward" validate:"min=0"`
	CategoryID  string   `json:"category_id" validate:"required"`
	ImageURL    string   `json:"image_url"`
	Sizes       []string `json:"sizes"`
	Stock       int      `json:"stock" validate:"min=0"`
}

// CategoryInput carries the fields for creating a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// CatalogUsecase serves storefront browsing and admin catalog CRUD. The
// checkout engine consumes products through the repository directly; this
// usecase is the outward-facing catalog surface.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context) ([]*entity.Category, error)
	CreateCategory(ctx context.Context, input *CategoryInput) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
