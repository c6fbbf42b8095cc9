package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/pos_shop/internal/config"
	"github.com/Skotchmaster/pos_shop/internal/models"
)

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	r, err := Open(ctx, &config.Config{CatalogDriver: "json", CatalogFile: filepath.Join(dir, "products.json")})
	require.NoError(t, err)
	require.IsType(t, &JSONRepo{}, r)
	require.NoError(t, r.Close())

	r, err = Open(ctx, &config.Config{CatalogDriver: "sqlite", CatalogDSN: filepath.Join(dir, "catalog.db")})
	require.NoError(t, err)
	require.IsType(t, &GormRepo{}, r)
	require.NoError(t, r.Save(ctx, []models.Product{{ID: 1, Name: "Tea", Price: 3}}))
	got, err := r.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Tea", got.Name)
	require.NoError(t, r.Close())

	_, err = Open(ctx, &config.Config{CatalogDriver: "postgres"})
	require.Error(t, err)

	_, err = Open(ctx, &config.Config{CatalogDriver: "mongo"})
	require.Error(t, err)
}
