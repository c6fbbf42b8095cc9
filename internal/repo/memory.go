package repo

import (
	"context"
	"sync"

	"github.com/Skotchmaster/pos_shop/internal/models"
)

type MemoryRepo struct {
	mu       sync.Mutex
	products []models.Product
}

func NewMemoryRepo(products ...models.Product) *MemoryRepo {
	return &MemoryRepo{products: append([]models.Product{}, products...)}
}

func (r *MemoryRepo) LoadAll(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Product{}, r.products...), nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return findByID(r.products, id)
}

func (r *MemoryRepo) Save(ctx context.Context, products []models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append([]models.Product{}, products...)
	return nil
}

func (r *MemoryRepo) Close() error { return nil }

var _ ProductRepo = (*MemoryRepo)(nil)
