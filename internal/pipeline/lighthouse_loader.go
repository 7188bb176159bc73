package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/enochian/lighthouse/internal/lighthouse"
	"github.com/enochian/lighthouse/pkg/models"
)

// BuildLighthouse implements spec.md §6's `build_lighthouse(path) -> KI`.
// It reads the on-disk artifact layout of §6:
// `lighthouse/traditions/<tradition_id>.json`, each file a canonical
// JSON array of KnowledgeEntry sorted by entry_id, UTF-8, LF endings.
// Unknown tradition_ids are rejected at load time (spec.md §9: tagged
// records with closed enums reject unknown values rather than silently
// accepting dynamic dict shapes).
func BuildLighthouse(path string) (*lighthouse.Lighthouse, error) {
	dir := filepath.Join(path, "traditions")
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("pipeline: reading lighthouse traditions dir %q: %w", dir, err)
	}

	var names []string
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		names = append(names, f.Name())
	}
	sort.Strings(names)

	var entries []models.KnowledgeEntry
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("pipeline: reading %q: %w", name, err)
		}
		var fileEntries []models.KnowledgeEntry
		if err := json.Unmarshal(b, &fileEntries); err != nil {
			return nil, fmt.Errorf("pipeline: decoding %q: %w", name, err)
		}
		entries = append(entries, fileEntries...)
	}

	return lighthouse.Build(entries)
}
