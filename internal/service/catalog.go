package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Skotchmaster/pos_shop/internal/images"
	"github.com/Skotchmaster/pos_shop/internal/logging"
	"github.com/Skotchmaster/pos_shop/internal/models"
	"github.com/Skotchmaster/pos_shop/internal/mykafka"
	"github.com/Skotchmaster/pos_shop/internal/repo"
)

// ProductIndex is an optional search index kept in step with the catalog.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id int) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type ImageUpload struct {
	Filename string
	Content  io.Reader
}

type CatalogService struct {
	Repo   repo.ProductRepo
	Images *images.Store
	Events mykafka.Publisher
	Index  ProductIndex
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.Repo.LoadAll(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int) (*models.Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) Page(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	products, err := s.Repo.LoadAll(ctx)
	if err != nil {
		return 0, nil, err
	}
	return int64(len(products)), window(products, offset, limit), nil
}

// Search uses the index when one is configured and a case-insensitive name
// match over the catalog otherwise.
func (s *CatalogService) Search(ctx context.Context, query string, offset, limit int) (int64, []models.Product, error) {
	if s.Index != nil {
		return s.Index.Search(ctx, query, offset, limit)
	}

	products, err := s.Repo.LoadAll(ctx)
	if err != nil {
		return 0, nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	matched := make([]models.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			matched = append(matched, p)
		}
	}
	return int64(len(matched)), window(matched, offset, limit), nil
}

func (s *CatalogService) Add(ctx context.Context, name string, price float64, image *ImageUpload) (*models.Product, error) {
	l := logging.FromContext(ctx)

	name, err := validateProduct(name, price)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, fmt.Errorf("image is required: %w", ErrValidation)
	}
	if !images.IsAllowedExtension(image.Filename) {
		return nil, fmt.Errorf("image type of %q is not allowed: %w", image.Filename, ErrValidation)
	}

	products, err := s.Repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	id := nextID(products)
	path, err := s.Images.Save(image.Content, images.FileName(name, id, images.Extension(image.Filename)))
	if err != nil {
		return nil, err
	}

	prod := models.Product{ID: id, Name: name, Price: price, Image: path}
	if err := s.Repo.Save(ctx, append(products, prod)); err != nil {
		l.Warn("catalog_save_failed_after_image_write", "orphan", path, "error", err)
		return nil, err
	}

	s.publish(ctx, map[string]interface{}{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	}, prod.ID)
	s.index(ctx, prod)
	return &prod, nil
}

// Update overwrites name and price. When image is set the previous file is
// removed before the new one is written.
func (s *CatalogService) Update(ctx context.Context, id int, name string, price float64, image *ImageUpload) (*models.Product, error) {
	l := logging.FromContext(ctx)

	products, err := s.Repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}

	name, err = validateProduct(name, price)
	if err != nil {
		return nil, err
	}
	if image != nil && !images.IsAllowedExtension(image.Filename) {
		return nil, fmt.Errorf("image type of %q is not allowed: %w", image.Filename, ErrValidation)
	}

	prod := products[idx]
	prod.Name = name
	prod.Price = price

	if image != nil {
		if err := s.Images.Remove(prod.Image); err != nil {
			l.Warn("remove_previous_image_failed", "path", prod.Image, "error", err)
		}
		path, err := s.Images.Save(image.Content, images.FileName(name, id, images.Extension(image.Filename)))
		if err != nil {
			return nil, err
		}
		prod.Image = path
	}

	products[idx] = prod
	if err := s.Repo.Save(ctx, products); err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]interface{}{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	}, prod.ID)
	s.index(ctx, prod)
	return &prod, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int) error {
	l := logging.FromContext(ctx)

	products, err := s.Repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}

	removed := products[idx]
	products = append(products[:idx], products[idx+1:]...)
	if err := s.Repo.Save(ctx, products); err != nil {
		return err
	}

	if err := s.Images.Remove(removed.Image); err != nil {
		l.Warn("remove_image_failed", "path", removed.Image, "error", err)
	}

	s.publish(ctx, map[string]interface{}{
		"type":      "product_deleted",
		"productID": id,
	}, id)
	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			l.Error("search_index_error", "productID", id, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) publish(ctx context.Context, event map[string]interface{}, id int) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, mykafka.ProductEvents, fmt.Sprint(id), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", mykafka.ProductEvents, "error", err)
	}
}

func (s *CatalogService) index(ctx context.Context, p models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Error("search_index_error", "productID", p.ID, "error", err)
	}
}

func validateProduct(name string, price float64) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name is required: %w", ErrValidation)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return "", fmt.Errorf("price must be a number >= 0: %w", ErrValidation)
	}
	return name, nil
}

// nextID is one past the highest id in use, or 1 for an empty catalog.
func nextID(products []models.Product) int {
	max := 0
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func indexOf(products []models.Product, id int) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func window(products []models.Product, offset, limit int) []models.Product {
	if offset >= len(products) {
		return []models.Product{}
	}
	end := offset + limit
	if end > len(products) {
		end = len(products)
	}
	return products[offset:end]
}

// Reindex pushes every catalog product to the search index.
func (s *CatalogService) Reindex(ctx context.Context) error {
	if s.Index == nil {
		return nil
	}
	products, err := s.Repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		if err := s.Index.IndexProduct(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
