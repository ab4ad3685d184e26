package catalog

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// Not-found errors enumerate known keys so callers can self-correct;
	// the list is capped to keep messages bounded on large trees.
	maxKeysInError = 20

	// Describe truncates descriptions to this prefix length. The cap is
	// part of the listing contract, not a display nicety.
	describeTruncateLen = 100
)

// Load returns the current content of a resource, re-read from disk
// through the boundary so edits between scan and load are observed. The
// returned text is byte-identical to the file.
func (c *Catalog) Load(kind Kind, key string) (string, error) {
	resources := c.Resources(kind)

	res, ok := resources[key]
	if !ok {
		return "", fmt.Errorf("%s %q not found, available: %s", kind, key, availableKeys(resources))
	}

	// Re-derive the root-relative path so the read goes back through the
	// boundary's full validation.
	rel, err := filepath.Rel(c.boundary.Root(), res.Path)
	if err != nil {
		return "", fmt.Errorf("cannot derive resource path for %s %q", kind, key)
	}

	return c.boundary.ReadFile(filepath.ToSlash(rel))
}

// Entry is one row of the read-only catalog listing.
type Entry struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description"`
	Source      string `json:"metadata_source"`
}

// Describe projects the three maps into a listing sorted by kind then
// name, with descriptions truncated to a fixed prefix.
func (c *Catalog) Describe() []Entry {
	var entries []Entry

	for _, kind := range []Kind{KindAgent, KindGuideline, KindFramework} {
		resources := c.Resources(kind)

		keys := make([]string, 0, len(resources))
		for key := range resources {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			res := resources[key]
			entries = append(entries, Entry{
				Kind:        kind.String(),
				Name:        res.Name,
				Category:    res.Category,
				Description: truncateDescription(res.Description),
				Source:      string(res.Source),
			})
		}
	}
	return entries
}

func truncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= describeTruncateLen {
		return s
	}
	// Cut on a rune boundary so multibyte text stays valid UTF-8.
	return string(runes[:describeTruncateLen]) + "..."
}

func availableKeys(resources map[string]Resource) string {
	if len(resources) == 0 {
		return "none"
	}

	keys := make([]string, 0, len(resources))
	for key := range resources {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if len(keys) > maxKeysInError {
		omitted := len(keys) - maxKeysInError
		return strings.Join(keys[:maxKeysInError], ", ") + fmt.Sprintf(" (and %d more)", omitted)
	}
	return strings.Join(keys, ", ")
}
