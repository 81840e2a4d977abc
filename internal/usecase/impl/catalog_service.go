package impl

import (
	"context"
	"log/slog"
	"time"

	"tsmarket/internal/domain/entity"
	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/domain/repository"
	"tsmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		txManager: txManager,
		logger:    logger,
	}
}

func (srv *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		found, err := repos.ProductRepo().List(ctx, filter)
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		found, err := repos.ProductRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.WithStack(domainerrors.ErrProductNotFound)
			}

			return errors.Wrap(err, "failed to read product")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	product, err := srv.productFromInput(input)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if _, err := repos.CategoryRepo().FindByID(ctx, product.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return errors.WithStack(domainerrors.ErrCategoryNotFound)
			}

			return errors.Wrap(err, "failed to resolve category")
		}

		return repos.ProductRepo().Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Product created", "productID", product.ID, "name", product.Name)

	return product, nil
}

// UpdateProduct replaces the editable fields of a product. Existing order
// items keep their snapshotted name and price.
func (srv *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	replacement, err := srv.productFromInput(input)
	if err != nil {
		return nil, err
	}

	var product *entity.Product

	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		existing, err := repos.ProductRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.WithStack(domainerrors.ErrProductNotFound)
			}

			return errors.Wrap(err, "failed to read product")
		}

		if _, err := repos.CategoryRepo().FindByID(ctx, replacement.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return errors.WithStack(domainerrors.ErrCategoryNotFound)
			}

			return errors.Wrap(err, "failed to resolve category")
		}

		replacement.ID = existing.ID
		replacement.CreatedAt = existing.CreatedAt
		if err := repos.ProductRepo().Update(ctx, replacement); err != nil {
			return errors.Wrap(err, "failed to update product")
		}
		product = replacement

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (srv *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.ProductRepo().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.WithStack(domainerrors.ErrProductNotFound)
			}

			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
}

func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var categories []*entity.Category

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		found, err := repos.CategoryRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list categories")
		}
		categories = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (srv *catalogService) CreateCategory(ctx context.Context, input *usecase.CategoryInput) (*entity.Category, error) {
	category := &entity.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CreatedAt:   time.Now().UTC(),
	}

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return repos.CategoryRepo().Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (srv *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.CategoryRepo().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return errors.WithStack(domainerrors.ErrCategoryNotFound)
			}

			return errors.Wrap(err, "failed to delete category")
		}

		return nil
	})
}

func (srv *catalogService) productFromInput(input *usecase.ProductInput) (*entity.Product, error) {
	categoryID, err := uuid.Parse(input.CategoryID)
	if err != nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid category id"))
	}

	return &entity.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		XPReward:    input.XPReward,
		CategoryID:  categoryID,
		ImageURL:    input.ImageURL,
		Sizes:       input.Sizes,
		Stock:       input.Stock,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
