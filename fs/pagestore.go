package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/cdunford/claimharvest"
)

// Ensure PageStore implements claimharvest.PageStore at compile time.
var _ claimharvest.PageStore = (*PageStore)(nil)

// PageStore persists parsed page documents as one JSON file per slug.
// Writes go through a temp file and rename, and are skipped entirely when
// the serialized document matches what is already on disk.
type PageStore struct {
	dir string
}

// NewPageStore creates a PageStore writing to dir.
func NewPageStore(dir string) *PageStore {
	return &PageStore{dir: dir}
}

func (s *PageStore) WritePage(page *claimharvest.PageDocument) error {
	if err := page.Validate(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	path := filepath.Join(s.dir, page.Slug+".json")
	if prev, err := os.ReadFile(path); err == nil {
		if xxhash.Sum64(prev) == xxhash.Sum64(b) {
			return nil
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadPages loads every stored page document, ordered by slug.
func (s *PageStore) ReadPages() ([]*claimharvest.PageDocument, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, claimharvest.Errorf(claimharvest.ENOTFOUND, "no parsed pages; run parse first")
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	pages := make([]*claimharvest.PageDocument, 0, len(names))
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		var page claimharvest.PageDocument
		if err := json.Unmarshal(b, &page); err != nil {
			return nil, claimharvest.Errorf(claimharvest.EINVALID, "malformed page document %q: %v", name, err)
		}
		pages = append(pages, &page)
	}
	return pages, nil
}
