package storefront

import (
	"context"

	"github.com/example/woo-storefront/domain/catalog"
	catalogmod "github.com/example/woo-storefront/modules/catalog"
)

// Catalog is the read side the pages are built from.
type Catalog interface {
	ListProducts(ctx context.Context, q catalogmod.ProductQuery) ([]catalog.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*catalog.Product, error)
	ListCategories(ctx context.Context, q catalogmod.CategoryQuery) ([]catalog.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*catalog.Category, error)
	ProductsByCategory(ctx context.Context, slug string, q catalogmod.ProductQuery) ([]catalog.Product, error)
}

var _ Catalog = (*catalogmod.Client)(nil)
