// Package boundary confines every filesystem access to a single configured
// root directory. All path resolution for resource files goes through a
// Boundary; nothing else in the codebase may touch the disk with a
// caller-supplied path.
//
// Validation runs in three stages: a lexical denylist on the raw requested
// string, logical containment of the cleaned path under the root, and a
// real-path (symlink-free) containment re-check when the target exists.
// The lexical gate alone cannot stop symlink escapes, and containment
// after resolution alone cannot stop encoded traversal strings, so both
// are required.
package boundary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for the security taxonomy. Callers distinguish them with
// errors.Is; messages are always sanitized (see displayPath).
var (
	// ErrUnsafePath means the raw requested path matched the lexical
	// denylist before any resolution was attempted.
	ErrUnsafePath = errors.New("unsafe path pattern")

	// ErrOutsideRoot means the cleaned logical path does not stay under
	// the configured root.
	ErrOutsideRoot = errors.New("path escapes resource root")

	// ErrLinkOutsideRoot means the logical path was contained but its
	// real (symlink-resolved) target is not under the root.
	ErrLinkOutsideRoot = errors.New("link target escapes resource root")
)

// Boundary is the sanctioned way to turn relative resource paths into safe
// absolute paths and to read files or list directories under the root.
// It holds exactly one immutable field; there is no caching.
type Boundary struct {
	root string
}

// New validates the root and returns a Boundary confined to it. The root
// must exist and be a directory; anything else is a fatal construction
// error and the caller must refuse to start. The stored root is
// canonicalized so containment checks compare symlink-free paths.
func New(root string) (*Boundary, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return nil, fmt.Errorf("resource root cannot be empty")
	}

	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve resource root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("resource root does not exist: %s", abs)
		}
		return nil, fmt.Errorf("cannot access resource root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("resource root is not a directory: %s", abs)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot canonicalize resource root: %w", err)
	}

	return &Boundary{root: canonical}, nil
}

// Root returns the canonicalized root directory.
func (b *Boundary) Root() string {
	return b.root
}

// Validate turns a caller-supplied relative path into a validated absolute
// path under the root. The empty string resolves to the root itself.
// Targets that do not exist yet pass the lexical and logical stages only,
// which supports pre-existence checks.
func (b *Boundary) Validate(requested string) (string, error) {
	if err := checkUnsafePatterns(requested); err != nil {
		return "", err
	}

	candidate := filepath.Clean(filepath.Join(b.root, requested))
	if !b.contains(candidate) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, b.displayPath(candidate))
	}

	if _, err := os.Lstat(candidate); err != nil {
		// Target does not exist (or cannot be stat'ed): skip the
		// real-path stage and hand back the logical path.
		return candidate, nil
	}

	real, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		// Broken symlink chain. The underlying error may embed paths
		// outside the root, so it is not wrapped into the message.
		return "", fmt.Errorf("cannot resolve real path for %s", b.displayPath(candidate))
	}
	if !b.contains(real) {
		return "", fmt.Errorf("%w: %s", ErrLinkOutsideRoot, b.displayPath(candidate))
	}

	return candidate, nil
}

// IsFileReadable reports whether the relative path validates and refers to
// a readable regular file. It never returns an error: any failure
// (validation, missing entry, wrong type, permission denial) is false.
func (b *Boundary) IsFileReadable(requested string) bool {
	abs, err := b.Validate(requested)
	if err != nil {
		return false
	}

	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	f, err := os.Open(abs)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// IsDirAccessible reports whether the relative path validates and refers
// to a listable directory. Never returns an error; failures are false.
func (b *Boundary) IsDirAccessible(requested string) bool {
	abs, err := b.Validate(requested)
	if err != nil {
		return false
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return false
	}

	if _, err := os.ReadDir(abs); err != nil {
		return false
	}
	return true
}

// ReadFile validates the relative path and returns the file's current
// contents. Security violations propagate unchanged; read failures come
// back with sanitized messages.
func (b *Boundary) ReadFile(requested string) (string, error) {
	abs, err := b.Validate(requested)
	if err != nil {
		return "", err
	}

	if !b.IsFileReadable(requested) {
		return "", fmt.Errorf("resource file is not readable: %s", b.displayPath(abs))
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("failed to read resource file %s", b.displayPath(abs))
	}
	return string(content), nil
}

// ListDir validates the relative path and returns the names of the
// directory's entries in lexical order.
func (b *Boundary) ListDir(requested string) ([]string, error) {
	abs, err := b.Validate(requested)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s", b.displayPath(abs))
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// contains reports whether an absolute path is the root or beneath it.
func (b *Boundary) contains(abs string) bool {
	if abs == b.root {
		return true
	}
	return strings.HasPrefix(abs, b.root+string(os.PathSeparator))
}

// displayPath renders a path for error messages without leaking structure
// outside the root: in-root paths are shown root-relative, anything else
// becomes a generic placeholder.
func (b *Boundary) displayPath(abs string) string {
	rel, err := filepath.Rel(b.root, abs)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return rel
	}
	return "<external path>"
}

// checkUnsafePatterns is the fast-fail lexical gate. It inspects the raw,
// unresolved string; it never touches the filesystem.
func checkUnsafePatterns(requested string) error {
	if strings.ContainsRune(requested, 0) {
		return fmt.Errorf("%w: embedded NUL byte", ErrUnsafePath)
	}
	if strings.Contains(requested, "..") {
		return fmt.Errorf("%w: parent directory traversal", ErrUnsafePath)
	}
	if strings.HasPrefix(requested, "~") {
		return fmt.Errorf("%w: home directory reference", ErrUnsafePath)
	}
	if strings.Contains(requested, "${") || strings.Contains(requested, "$(") {
		return fmt.Errorf("%w: shell expansion syntax", ErrUnsafePath)
	}
	if strings.Contains(requested, `\x`) {
		return fmt.Errorf("%w: escaped hex sequence", ErrUnsafePath)
	}
	if containsPercentEncoding(requested) {
		return fmt.Errorf("%w: percent-encoded sequence", ErrUnsafePath)
	}
	return nil
}

// containsPercentEncoding detects %XX octets that some normalizers decode
// into traversal characters after the lexical checks have run.
func containsPercentEncoding(s string) bool {
	for i := 0; i+2 < len(s); i++ {
		if s[i] == '%' && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
			return true
		}
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
