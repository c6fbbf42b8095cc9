package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Skotchmaster/pos_shop/internal/logging"
	"github.com/Skotchmaster/pos_shop/internal/models"
)

// JSONRepo keeps the catalog as a JSON array in a single file.
type JSONRepo struct {
	Path string
	mu   sync.Mutex
}

func NewJSONRepo(path string) *JSONRepo {
	return &JSONRepo{Path: path}
}

// LoadAll never fails: a missing, unreadable or undecodable file yields an
// empty catalog.
func (r *JSONRepo) LoadAll(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx), nil
}

func (r *JSONRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	products, _ := r.LoadAll(ctx)
	return findByID(products, id)
}

func (r *JSONRepo) Save(ctx context.Context, products []models.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if products == nil {
		products = []models.Product{}
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dir := filepath.Dir(r.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.Path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

func (r *JSONRepo) Close() error { return nil }

func (r *JSONRepo) load(ctx context.Context) []models.Product {
	l := logging.FromContext(ctx)

	raw, err := os.ReadFile(r.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.Warn("catalog_read_error", "path", r.Path, "error", err)
		}
		return []models.Product{}
	}

	products, err := decodeCatalog(raw)
	if err != nil {
		l.Warn("catalog_decode_error", "path", r.Path, "error", err)
		return []models.Product{}
	}
	return products
}

// decodeCatalog tries UTF-8 first (a UTF-8 or UTF-16 BOM is honoured), then
// Windows-874, which older Thai installs wrote.
func decodeCatalog(raw []byte) ([]models.Product, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []models.Product{}, nil
	}

	text, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err == nil && utf8.Valid(text) {
		if products, err := unmarshalCatalog(text); err == nil {
			return products, nil
		}
	}

	text, _, err = transform.Bytes(charmap.Windows874.NewDecoder(), raw)
	if err != nil {
		return nil, err
	}
	return unmarshalCatalog(text)
}

func unmarshalCatalog(text []byte) ([]models.Product, error) {
	var products []models.Product
	if err := json.Unmarshal(text, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

var _ ProductRepo = (*JSONRepo)(nil)
