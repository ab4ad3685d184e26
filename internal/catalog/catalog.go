// Package catalog discovers markdown resources under the configured root
// and serves their content on demand. Three fixed resource kinds live in
// three fixed subtrees: agents (flat files, keyed by filename stem),
// guidelines (nested files, keyed by relative path and categorized by
// their first path segment), and frameworks (one-level directories with a
// conventionally named entry file).
//
// All filesystem access goes through the security boundary and all
// description extraction through the metadata package. Scans build
// immutable snapshot maps; a rescan replaces all three wholesale.
package catalog

import (
	"agentry/internal/boundary"
	"agentry/internal/logging"
	"agentry/internal/metadata"
	"fmt"
)

// Fixed content-kind conventions. These are configuration constants of the
// folder layout, not computed values.
const (
	agentsDir     = "agents"
	guidelinesDir = "guidelines"
	frameworksDir = "frameworks"

	resourceExt = ".md"

	// DefaultCategory is assigned to guidelines that sit at the top
	// level of the guidelines tree.
	DefaultCategory = "general"

	// Files above this size are skipped during scans.
	maxResourceFileSize = 10 * 1024 * 1024
)

// frameworkEntryNames are the conventional entry-file variants tried, in
// order, inside each framework directory. The first readable one wins.
var frameworkEntryNames = []string{"README.md", "readme.md", "Readme.md"}

// Kind is the closed enumeration of resource kinds. Scan and load
// strategies are selected by explicit tag, never by name matching.
type Kind int

const (
	KindAgent Kind = iota
	KindGuideline
	KindFramework
)

func (k Kind) String() string {
	switch k {
	case KindAgent:
		return "agent"
	case KindGuideline:
		return "guideline"
	case KindFramework:
		return "framework"
	default:
		return "unknown"
	}
}

// ParseKind maps a user-supplied kind name to its tag.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "agent", "agents":
		return KindAgent, nil
	case "guideline", "guidelines":
		return KindGuideline, nil
	case "framework", "frameworks":
		return KindFramework, nil
	default:
		return 0, fmt.Errorf("unknown resource kind %q (expected agent, guideline or framework)", s)
	}
}

// Resource describes one discovered file.
type Resource struct {
	// Name is the stable identifier derived from the relative path and
	// acts as the map key within its kind.
	Name string

	// Path is the validated absolute location of the backing file,
	// always produced by the boundary and never handed to callers raw.
	Path string

	// Description is the raw extracted metadata text, unparsed.
	Description string

	// Source records which extraction strategy produced Description.
	Source metadata.Source

	// Category is set for guidelines only: the first segment of the
	// resource key, or DefaultCategory for top-level files.
	Category string
}

// Catalog holds the three resource maps produced by the latest scan.
// Maps are snapshots: loads never mutate them and ScanAll replaces them
// entirely.
type Catalog struct {
	boundary *boundary.Boundary
	logger   *logging.AppLogger

	agents     map[string]Resource
	guidelines map[string]Resource
	frameworks map[string]Resource
}

// New creates a catalog over an already-validated boundary. The boundary
// is an explicit dependency; there is no ambient global instance.
func New(b *boundary.Boundary, logger *logging.AppLogger) *Catalog {
	return &Catalog{
		boundary:   b,
		logger:     logger,
		agents:     make(map[string]Resource),
		guidelines: make(map[string]Resource),
		frameworks: make(map[string]Resource),
	}
}

// ScanAll runs the three scans and publishes the resulting maps. It is
// idempotent against an unchanged filesystem and safe to call repeatedly.
func (c *Catalog) ScanAll() {
	c.agents = c.ScanAgents()
	c.guidelines = c.ScanGuidelines()
	c.frameworks = c.ScanFrameworks()

	c.logger.Info("Resource scan completed",
		"agents", len(c.agents),
		"guidelines", len(c.guidelines),
		"frameworks", len(c.frameworks),
	)
}

// Resources returns the current snapshot map for a kind. Callers must not
// mutate the returned map.
func (c *Catalog) Resources(kind Kind) map[string]Resource {
	switch kind {
	case KindAgent:
		return c.agents
	case KindGuideline:
		return c.guidelines
	case KindFramework:
		return c.frameworks
	default:
		return nil
	}
}
