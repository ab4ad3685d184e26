package catalog

import (
	"path"
	"strings"

	"agentry/internal/metadata"
	"agentry/pkg/fileops"
)

// ScanAgents recursively walks the agents subtree. Keys are filename
// stems, so nested agents collapse into a flat namespace; on collision the
// later entry in lexical walk order wins (accepted last-write-wins
// behavior, deterministic because directory listings are sorted).
func (c *Catalog) ScanAgents() map[string]Resource {
	result := make(map[string]Resource)
	if !c.boundary.IsDirAccessible(agentsDir) {
		c.logger.Debug("Agents directory missing or inaccessible", "dir", agentsDir)
		return result
	}

	c.walk(agentsDir, "", func(rel string) {
		res, ok := c.loadResource(path.Join(agentsDir, rel))
		if !ok {
			return
		}
		base := path.Base(rel)
		res.Name = strings.TrimSuffix(base, path.Ext(base))
		result[res.Name] = res
	})
	return result
}

// ScanGuidelines walks the guidelines subtree keeping the nesting: keys
// are slash-joined paths relative to the guidelines root without the
// extension, e.g. "development/api-design". The first path segment
// becomes the category; top-level files get DefaultCategory.
func (c *Catalog) ScanGuidelines() map[string]Resource {
	result := make(map[string]Resource)
	if !c.boundary.IsDirAccessible(guidelinesDir) {
		c.logger.Debug("Guidelines directory missing or inaccessible", "dir", guidelinesDir)
		return result
	}

	c.walk(guidelinesDir, "", func(rel string) {
		res, ok := c.loadResource(path.Join(guidelinesDir, rel))
		if !ok {
			return
		}
		key := strings.TrimSuffix(rel, path.Ext(rel))
		res.Name = key
		res.Category = DefaultCategory
		if i := strings.Index(key, "/"); i >= 0 {
			res.Category = key[:i]
		}
		result[key] = res
	})
	return result
}

// ScanFrameworks walks exactly one level: each accessible subdirectory of
// the frameworks root is a candidate named after the directory. Entry-file
// variants are tried in fixed priority order; the first readable one is
// the sole backing file and later variants are not consulted. Directories
// with no entry file are skipped, not errors.
func (c *Catalog) ScanFrameworks() map[string]Resource {
	result := make(map[string]Resource)
	if !c.boundary.IsDirAccessible(frameworksDir) {
		c.logger.Debug("Frameworks directory missing or inaccessible", "dir", frameworksDir)
		return result
	}

	names, err := c.boundary.ListDir(frameworksDir)
	if err != nil {
		c.logger.Debug("Failed to list frameworks directory", "error", err)
		return result
	}

	for _, name := range names {
		dirRel := path.Join(frameworksDir, name)
		if !c.boundary.IsDirAccessible(dirRel) {
			continue
		}

		for _, entry := range frameworkEntryNames {
			entryRel := path.Join(dirRel, entry)
			if !c.boundary.IsFileReadable(entryRel) {
				continue
			}
			if res, ok := c.loadResource(entryRel); ok {
				res.Name = name
				result[name] = res
			}
			break
		}
	}
	return result
}

// walk recursively visits resource files under kindDir, calling visit with
// each file's slash-joined path relative to kindDir. Inaccessible entries
// and non-matching files are silently skipped; a failure never aborts the
// walk.
func (c *Catalog) walk(kindDir, sub string, visit func(rel string)) {
	dir := path.Join(kindDir, sub)
	names, err := c.boundary.ListDir(dir)
	if err != nil {
		c.logger.Debug("Skipping unlistable directory", "dir", dir, "error", err)
		return
	}

	for _, name := range names {
		entryRel := path.Join(sub, name)
		full := path.Join(kindDir, entryRel)

		if c.boundary.IsDirAccessible(full) {
			c.walk(kindDir, entryRel, visit)
			continue
		}
		if !isResourceFile(name) {
			continue
		}
		if !c.boundary.IsFileReadable(full) {
			continue
		}
		visit(entryRel)
	}
}

// loadResource reads one file through the boundary and extracts its
// description. Any failure means the file is skipped, never a scan error.
func (c *Catalog) loadResource(relPath string) (Resource, bool) {
	abs, err := c.boundary.Validate(relPath)
	if err != nil {
		c.logger.Debug("Skipping resource with invalid path", "path", relPath, "error", err)
		return Resource{}, false
	}

	if err := fileops.ValidateFileSizeLimit(abs, maxResourceFileSize); err != nil {
		c.logger.Debug("Skipping oversized resource", "path", relPath, "error", err)
		return Resource{}, false
	}

	raw, err := c.boundary.ReadFile(relPath)
	if err != nil {
		c.logger.Debug("Skipping unreadable resource", "path", relPath, "error", err)
		return Resource{}, false
	}

	desc := metadata.Extract(raw)
	if desc.Source == metadata.SourceDerived {
		// Diagnostic only: the file works, it just lacks an explicit
		// metadata block.
		c.logger.Debug("Resource has no explicit metadata block", "path", relPath)
	}

	return Resource{
		Path:        abs,
		Description: desc.Content,
		Source:      desc.Source,
	}, true
}

// isResourceFile checks the fixed extension, case-insensitively.
func isResourceFile(name string) bool {
	return strings.EqualFold(path.Ext(name), resourceExt)
}
