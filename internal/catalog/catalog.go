package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrCategoryUnavailable = fmt.Errorf("category unavailable")

// Item - одна фотография каталога. Ответ вычисляется один раз при
// сканировании каталога, дальше матчинг не зависит от имён файлов.
type Item struct {
	ID     string // имя файла, например "mercedes.png"
	Answer string // базовое имя без расширения, например "mercedes"
	Path   string // полный путь для чтения байтов
}

// Catalog отдаёт фотографии по категориям. Каждая категория - отдельная
// директория под базовой.
type Catalog struct {
	baseDir string
	// категория -> поддиректория
	dirs  map[string]string
	order []string
}

// Категории исходной игры.
var defaultDirs = map[string]string{
	"Logo":   "logo_fotolar",
	"Resim":  "resim_fotolar",
	"Bayrak": "bayrak_fotolar",
}

var defaultOrder = []string{"Logo", "Resim", "Bayrak"}

func NewCatalog(baseDir string) *Catalog {
	return &Catalog{
		baseDir: baseDir,
		dirs:    defaultDirs,
		order:   defaultOrder,
	}
}

// NewCatalogWithDirs - для тестов и нестандартных раскладок.
func NewCatalogWithDirs(baseDir string, dirs map[string]string, order []string) *Catalog {
	return &Catalog{baseDir: baseDir, dirs: dirs, order: order}
}

// Categories возвращает категории в порядке показа кнопок.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) HasCategory(category string) bool {
	_, ok := c.dirs[category]
	return ok
}

// ListItems перечисляет фотографии категории в стабильном порядке.
func (c *Catalog) ListItems(category string) ([]Item, error) {
	dir, ok := c.dirs[category]
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrCategoryUnavailable, category)
	}

	full := filepath.Join(c.baseDir, dir)
	entries, err := os.ReadDir(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryUnavailable, err)
	}

	var items []Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		items = append(items, Item{
			ID:     name,
			Answer: answerFromFilename(name),
			Path:   filepath.Join(full, name),
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// SessionPool отдаёт первые max фотографий категории. Перемешивания здесь
// нет - случайный выбор происходит при каждом раунде.
func (c *Catalog) SessionPool(category string, max int) ([]Item, error) {
	items, err := c.ListItems(category)
	if err != nil {
		return nil, err
	}
	if len(items) > max {
		items = items[:max]
	}
	return items, nil
}

// ReadPhoto читает байты фотографии для отправки в чат.
func (c *Catalog) ReadPhoto(item Item) ([]byte, error) {
	data, err := os.ReadFile(item.Path)
	if err != nil {
		return nil, fmt.Errorf("read photo %q: %w", item.ID, err)
	}
	return data, nil
}

func answerFromFilename(name string) string {
	base := name
	if idx := strings.Index(name, "."); idx >= 0 {
		base = name[:idx]
	}
	return base
}
