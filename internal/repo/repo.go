package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/pos_shop/internal/config"
	"github.com/Skotchmaster/pos_shop/internal/models"
)

var ErrNotFound = errors.New("product not found")

// ProductRepo is the catalog storage. Save replaces the whole catalog.
type ProductRepo interface {
	LoadAll(ctx context.Context) ([]models.Product, error)
	Save(ctx context.Context, products []models.Product) error
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Close() error
}

// Open returns the catalog store selected by CATALOG_DRIVER.
func Open(ctx context.Context, cfg *config.Config) (ProductRepo, error) {
	switch cfg.CatalogDriver {
	case "", "json":
		return NewJSONRepo(cfg.CatalogFile), nil
	case "sqlite":
		dsn := cfg.CatalogDSN
		if dsn == "" {
			dsn = "catalog.db"
		}
		return OpenSQLite(ctx, dsn)
	case "postgres":
		return OpenPostgres(ctx, cfg.CatalogDSN)
	default:
		return nil, fmt.Errorf("unknown catalog driver %q", cfg.CatalogDriver)
	}
}

func findByID(products []models.Product, id int) (*models.Product, error) {
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}
