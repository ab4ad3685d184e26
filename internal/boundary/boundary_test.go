package boundary

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// createSymlink creates a symbolic link for testing, skipping on platforms
// where symlink creation is not permitted.
func createSymlink(t *testing.T, oldname, newname string) {
	t.Helper()
	if err := os.Symlink(oldname, newname); err != nil {
		if runtime.GOOS == "windows" {
			t.Skipf("symlink creation failed on Windows: %v", err)
		}
		t.Fatalf("failed to create symlink: %v", err)
	}
}

// newTestBoundary builds a boundary over a fresh temp root with the given
// relative files pre-created.
func newTestBoundary(t *testing.T, files map[string]string) (*Boundary, string) {
	t.Helper()
	root := t.TempDir()

	for rel, content := range files {
		full := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	b, err := New(root)
	if err != nil {
		t.Fatalf("New(%q) failed: %v", root, err)
	}
	return b, b.Root()
}

func TestNew(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		root := t.TempDir()
		b, err := New(root)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if b.Root() == "" {
			t.Error("Expected canonical root, got empty string")
		}
	})

	t.Run("missing root is fatal", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "does-not-exist"))
		if err == nil {
			t.Fatal("Expected error for missing root")
		}
		if !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("Expected missing-root error, got: %v", err)
		}
	})

	t.Run("file root is fatal", func(t *testing.T) {
		root := t.TempDir()
		file := filepath.Join(root, "file.md")
		if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		_, err := New(file)
		if err == nil {
			t.Fatal("Expected error for file root")
		}
		if !strings.Contains(err.Error(), "not a directory") {
			t.Errorf("Expected not-a-directory error, got: %v", err)
		}
	})

	t.Run("empty root is fatal", func(t *testing.T) {
		if _, err := New("   "); err == nil {
			t.Fatal("Expected error for empty root")
		}
	})
}

func TestValidate_LexicalDenylist(t *testing.T) {
	b, _ := newTestBoundary(t, map[string]string{
		"agents/x.md": "content",
	})

	tests := []struct {
		name string
		path string
	}{
		{name: "parent traversal", path: "../secret"},
		{name: "traversal that resolves inside root", path: "agents/../agents/x.md"},
		{name: "traversal in middle", path: "agents/../../etc/passwd"},
		{name: "double dot filename", path: "file..md"},
		{name: "home shorthand", path: "~/secret"},
		{name: "variable expansion", path: "${HOME}/secret"},
		{name: "command substitution", path: "$(whoami)/x.md"},
		{name: "percent encoded traversal", path: "%2e%2e/secret"},
		{name: "percent encoded slash", path: "agents%2fx.md"},
		{name: "backslash hex escape", path: `agents\x2e\x2e/x.md`},
		{name: "embedded NUL byte", path: "agents/x.md\x00.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Validate(tt.path)
			if err == nil {
				t.Fatalf("Validate(%q) should have been rejected", tt.path)
			}
			if !errors.Is(err, ErrUnsafePath) {
				t.Errorf("Expected ErrUnsafePath, got: %v", err)
			}
		})
	}
}

func TestValidate_AcceptsSafePaths(t *testing.T) {
	b, root := newTestBoundary(t, map[string]string{
		"agents/planner.md":              "content",
		"guidelines/dev/api.md":          "content",
		"frameworks/checklist/README.md": "content",
	})

	tests := []struct {
		name string
		path string
	}{
		{name: "simple file", path: "agents/planner.md"},
		{name: "nested file", path: "guidelines/dev/api.md"},
		{name: "named entry file", path: "frameworks/checklist/README.md"},
		{name: "empty path resolves to root", path: ""},
		{name: "nonexistent target", path: "agents/future.md"},
		{name: "percent without hex digits", path: "agents/100%.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, err := b.Validate(tt.path)
			if err != nil {
				t.Fatalf("Validate(%q) failed: %v", tt.path, err)
			}
			if abs != root && !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
				t.Errorf("Validated path %q is not under root %q", abs, root)
			}
		})
	}
}

func TestValidate_SymlinkEscape(t *testing.T) {
	b, root := newTestBoundary(t, map[string]string{
		"agents/planner.md": "content",
	})

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.md")
	if err := os.WriteFile(secret, []byte("secret"), 0644); err != nil {
		t.Fatalf("failed to create outside file: %v", err)
	}

	createSymlink(t, secret, filepath.Join(root, "agents", "escape.md"))
	createSymlink(t, outside, filepath.Join(root, "outside-dir"))

	t.Run("file symlink pointing outside root", func(t *testing.T) {
		_, err := b.Validate("agents/escape.md")
		if err == nil {
			t.Fatal("Expected link-escape error")
		}
		if !errors.Is(err, ErrLinkOutsideRoot) {
			t.Errorf("Expected ErrLinkOutsideRoot, got: %v", err)
		}
		if errors.Is(err, ErrUnsafePath) {
			t.Error("Symlink escape must be distinct from the lexical error")
		}
	})

	t.Run("directory symlink pointing outside root", func(t *testing.T) {
		_, err := b.Validate("outside-dir/secret.md")
		if err == nil {
			t.Fatal("Expected link-escape error")
		}
		if !errors.Is(err, ErrLinkOutsideRoot) {
			t.Errorf("Expected ErrLinkOutsideRoot, got: %v", err)
		}
	})

	t.Run("symlink staying inside root is allowed", func(t *testing.T) {
		createSymlink(t, filepath.Join(root, "agents", "planner.md"), filepath.Join(root, "alias.md"))
		if _, err := b.Validate("alias.md"); err != nil {
			t.Errorf("In-root symlink should validate, got: %v", err)
		}
	})
}

func TestValidate_ErrorMessagesAreSanitized(t *testing.T) {
	b, root := newTestBoundary(t, nil)

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.md")
	if err := os.WriteFile(secret, []byte("secret"), 0644); err != nil {
		t.Fatalf("failed to create outside file: %v", err)
	}
	createSymlink(t, secret, filepath.Join(root, "escape.md"))

	_, err := b.Validate("escape.md")
	if err == nil {
		t.Fatal("Expected link-escape error")
	}

	msg := err.Error()
	if strings.Contains(msg, outside) {
		t.Errorf("Error message leaks a path outside the root: %s", msg)
	}
	if !strings.Contains(msg, "escape.md") {
		t.Errorf("Error message should reference the root-relative path, got: %s", msg)
	}
}

func TestIsFileReadable(t *testing.T) {
	b, _ := newTestBoundary(t, map[string]string{
		"agents/planner.md": "content",
	})

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "readable file", path: "agents/planner.md", expected: true},
		{name: "missing file", path: "agents/missing.md", expected: false},
		{name: "directory not file", path: "agents", expected: false},
		{name: "traversal path", path: "../outside.md", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.IsFileReadable(tt.path); got != tt.expected {
				t.Errorf("IsFileReadable(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestIsDirAccessible(t *testing.T) {
	b, _ := newTestBoundary(t, map[string]string{
		"agents/planner.md": "content",
	})

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "accessible directory", path: "agents", expected: true},
		{name: "root itself", path: "", expected: true},
		{name: "missing directory", path: "nope", expected: false},
		{name: "file not directory", path: "agents/planner.md", expected: false},
		{name: "traversal path", path: "..", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.IsDirAccessible(tt.path); got != tt.expected {
				t.Errorf("IsDirAccessible(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	b, _ := newTestBoundary(t, map[string]string{
		"agents/planner.md": "# Planner\n\nPlans things.",
	})

	t.Run("reads exact content", func(t *testing.T) {
		content, err := b.ReadFile("agents/planner.md")
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if content != "# Planner\n\nPlans things." {
			t.Errorf("Unexpected content: %q", content)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := b.ReadFile("agents/missing.md")
		if err == nil {
			t.Fatal("Expected error for missing file")
		}
		if !strings.Contains(err.Error(), "agents/missing.md") {
			t.Errorf("Expected root-relative path in message, got: %v", err)
		}
	})

	t.Run("security violation propagates", func(t *testing.T) {
		_, err := b.ReadFile("../secret.md")
		if !errors.Is(err, ErrUnsafePath) {
			t.Errorf("Expected ErrUnsafePath, got: %v", err)
		}
	})
}

func TestListDir(t *testing.T) {
	b, _ := newTestBoundary(t, map[string]string{
		"agents/a.md":     "x",
		"agents/b.md":     "x",
		"agents/sub/c.md": "x",
	})

	t.Run("lists entries in lexical order", func(t *testing.T) {
		names, err := b.ListDir("agents")
		if err != nil {
			t.Fatalf("ListDir failed: %v", err)
		}
		want := []string{"a.md", "b.md", "sub"}
		if len(names) != len(want) {
			t.Fatalf("Expected %d entries, got %d: %v", len(want), len(names), names)
		}
		for i, name := range want {
			if names[i] != name {
				t.Errorf("Entry %d: expected %q, got %q", i, name, names[i])
			}
		}
	})

	t.Run("listing a file fails", func(t *testing.T) {
		if _, err := b.ListDir("agents/a.md"); err == nil {
			t.Error("Expected error when listing a file")
		}
	})

	t.Run("missing directory fails", func(t *testing.T) {
		if _, err := b.ListDir("missing"); err == nil {
			t.Error("Expected error for missing directory")
		}
	})
}
