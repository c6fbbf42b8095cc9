// Package images stores product pictures on the local filesystem.
package images

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

// Extension returns the lowercase suffix after the last dot, or "" if there
// is none.
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

func IsAllowedExtension(filename string) bool {
	ext := Extension(filename)
	if ext == "" {
		return false
	}
	_, ok := allowedExtensions[ext]
	return ok
}

// SanitizeName turns a product name into something safe to use as a file name.
func SanitizeName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range norm.NFKC.String(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '-' || r == '_':
			pendingSep = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSep = true
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "product"
	}
	return out
}

// FileName derives the stored name for a product image: sanitize(name)_{id}.{ext}.
func FileName(name string, id int, ext string) string {
	return fmt.Sprintf("%s_%d.%s", SanitizeName(name), id, strings.ToLower(ext))
}

type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Save writes r to Dir/name, replacing any existing file, and returns the path.
func (s *Store) Save(r io.Reader, name string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(s.Dir, filepath.Base(name))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

// Remove deletes path. A file that is already gone is not an error.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// URL maps a stored image path to the route the upload dir is served on.
func URL(path string) string {
	if path == "" {
		return ""
	}
	return "/uploads/" + filepath.Base(path)
}
