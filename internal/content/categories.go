package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Category descriptor file names, checked in order.
var categoryFileNames = []string{"_category_.yml", "_category_.yaml"}

// CategoryDescriptor is per-folder configuration, keyed by the folder's path
// relative to the version root. Loaded once per scan and held read-only.
type CategoryDescriptor struct {
	Label       string         `yaml:"label,omitempty"`
	Position    *int           `yaml:"position,omitempty"`
	Collapsible *bool          `yaml:"collapsible,omitempty"`
	Collapsed   *bool          `yaml:"collapsed,omitempty"`
	Icon        string         `yaml:"icon,omitempty"`
	TabGroup    string         `yaml:"tab_group,omitempty"`
	Extra       map[string]any `yaml:",inline"`
}

// EffectivePosition returns the descriptor's position or the unordered
// sentinel.
func (c *CategoryDescriptor) EffectivePosition() int {
	if c.Position != nil {
		return *c.Position
	}
	return UnorderedPosition
}

// LoadCategories walks a version root and parses every category descriptor
// file into a folder-path → descriptor map. Folder paths use forward
// slashes; "" keys the version root itself. Malformed descriptor files are
// logged and skipped, never fatal to a scan.
func LoadCategories(versionRoot string) map[string]*CategoryDescriptor {
	descriptors := map[string]*CategoryDescriptor{}

	_ = filepath.WalkDir(versionRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable subtree, skip
		}
		if d.IsDir() || !isCategoryFile(d.Name()) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("Failed to read category descriptor", logfields.Path(path), logfields.Error(err))
			return nil
		}

		var desc CategoryDescriptor
		if err := yaml.Unmarshal(data, &desc); err != nil {
			slog.Warn("Malformed category descriptor", logfields.Path(path), logfields.Error(err))
			return nil
		}

		rel, err := filepath.Rel(versionRoot, filepath.Dir(path))
		if err != nil {
			return nil //nolint:nilerr
		}
		folder := filepath.ToSlash(rel)
		if folder == "." {
			folder = ""
		}
		descriptors[folder] = &desc
		return nil
	})

	return descriptors
}

// nearestCategory finds the descriptor of the closest ancestor folder,
// walking from the document's own folder up to the version root.
func nearestCategory(descriptors map[string]*CategoryDescriptor, folder string) *CategoryDescriptor {
	for {
		if desc, ok := descriptors[folder]; ok {
			return desc
		}
		if folder == "" {
			return nil
		}
		idx := strings.LastIndex(folder, "/")
		if idx < 0 {
			folder = ""
		} else {
			folder = folder[:idx]
		}
	}
}

func isCategoryFile(name string) bool {
	for _, candidate := range categoryFileNames {
		if name == candidate {
			return true
		}
	}
	return false
}
