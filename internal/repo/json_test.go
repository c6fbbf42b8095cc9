package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/Skotchmaster/pos_shop/internal/models"
)

func TestJSONRepo_MissingFileIsEmpty(t *testing.T) {
	r := NewJSONRepo(filepath.Join(t.TempDir(), "products.json"))

	products, err := r.LoadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, products)

	_, err = r.GetByID(context.Background(), 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestJSONRepo_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "products.json")
	r := NewJSONRepo(path)

	in := []models.Product{
		{ID: 1, Name: "Coffee", Price: 5, Image: "static/uploads/Coffee_1.png"},
		{ID: 3, Name: "Tea", Price: 3.5, Image: "static/uploads/Tea_3.jpg"},
	}
	require.NoError(t, r.Save(ctx, in))

	out, err := r.LoadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, in, out)

	p, err := r.GetByID(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, "Tea", p.Name)
}

func TestJSONRepo_SaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	r := NewJSONRepo(path)

	require.NoError(t, r.Save(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]", string(raw))
}

func TestJSONRepo_ReadsLegacyEncodings(t *testing.T) {
	doc := `[{"id":1,"name":"กาแฟ","price":45,"image":"static/a.png"}]`

	thai, err := charmap.Windows874.NewEncoder().Bytes([]byte(doc))
	require.NoError(t, err)

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(doc))
	require.NoError(t, err)

	bom := append([]byte{0xEF, 0xBB, 0xBF}, doc...)

	tests := []struct {
		name string
		raw  []byte
	}{
		{name: "utf8", raw: []byte(doc)},
		{name: "utf8 with bom", raw: bom},
		{name: "utf16 with bom", raw: utf16},
		{name: "windows-874", raw: thai},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "products.json")
			require.NoError(t, os.WriteFile(path, tt.raw, 0o644))

			products, err := NewJSONRepo(path).LoadAll(context.Background())
			require.NoError(t, err)
			require.Len(t, products, 1)
			require.Equal(t, "กาแฟ", products[0].Name)
			require.EqualValues(t, 45, products[0].Price)
		})
	}
}

func TestJSONRepo_UndecodableFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	products, err := NewJSONRepo(path).LoadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, products)
}
