package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/enochian/lighthouse/internal/aethyr"
	"github.com/enochian/lighthouse/internal/sourcereg"
	"github.com/enochian/lighthouse/pkg/models"
)

// RegistryPaths names the on-disk locations LoadRegistries reads from
// (spec.md §6 "On-disk artifacts"). GovernorsDir is optional: when empty,
// the fixed 91-governor table falls back entirely to its deterministic
// name-derived profile (internal/aethyr.BuildGovernors).
type RegistryPaths struct {
	SourcesFile  string // JSON array of models.SourceCitation
	GovernorsDir string // governors/<NAME>.json, optional overrides
}

// LoadRegistries implements spec.md §6's
// `load_registries(paths) -> (SR, AM, GR)`. AM and GR are returned
// together as a single *aethyr.Map since GR is always built from AM's
// fixed distribution (spec.md §4.4).
func LoadRegistries(paths RegistryPaths) (*sourcereg.Registry, *aethyr.Map, error) {
	var citations []models.SourceCitation
	if paths.SourcesFile != "" {
		b, err := os.ReadFile(paths.SourcesFile)
		if err != nil {
			return nil, nil, fmt.Errorf("pipeline: reading sources file %q: %w", paths.SourcesFile, err)
		}
		if err := json.Unmarshal(b, &citations); err != nil {
			return nil, nil, fmt.Errorf("pipeline: decoding sources file %q: %w", paths.SourcesFile, err)
		}
	}
	sr, err := sourcereg.New(citations)
	if err != nil {
		return nil, nil, err
	}

	var am *aethyr.Map
	if paths.GovernorsDir == "" {
		am, err = aethyr.Build()
	} else {
		var overrides map[string]aethyr.GovernorProfile
		overrides, err = loadGovernorOverrides(paths.GovernorsDir)
		if err != nil {
			return nil, nil, err
		}
		am, err = aethyr.BuildWithOverrides(overrides)
	}
	if err != nil {
		return nil, nil, err
	}

	return sr, am, nil
}

func loadGovernorOverrides(dir string) (map[string]aethyr.GovernorProfile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("pipeline: reading governors dir %q: %w", dir, err)
	}
	out := make(map[string]aethyr.GovernorProfile, len(files))
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("pipeline: reading %q: %w", f.Name(), err)
		}
		var prof aethyr.GovernorProfile
		if err := json.Unmarshal(b, &prof); err != nil {
			return nil, fmt.Errorf("pipeline: decoding %q: %w", f.Name(), err)
		}
		out[normalizeKey(prof.Name)] = prof
	}
	return out, nil
}

func normalizeKey(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
