package fileops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("cannot determine home directory: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde path expansion",
			input:    "~/documents",
			expected: filepath.Join(home, "documents"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/absolute/path",
			expected: "/absolute/path",
		},
		{
			name:     "relative path unchanged",
			input:    "relative/path",
			expected: "relative/path",
		},
		{
			name:     "bare tilde unchanged",
			input:    "~",
			expected: "~",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExpandPath(tt.input)
			if result != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		maxLength   int
		expected    string
		expectError bool
	}{
		{
			name:      "simple name",
			input:     "planner",
			maxLength: 100,
			expected:  "planner",
		},
		{
			name:      "spaces become underscores",
			input:     "api design",
			maxLength: 100,
			expected:  "api_design",
		},
		{
			name:      "dangerous characters stripped",
			input:     "my-tool@name#123",
			maxLength: 100,
			expected:  "my-toolname123",
		},
		{
			name:      "length limit enforced",
			input:     strings.Repeat("a", 200),
			maxLength: 50,
			expected:  strings.Repeat("a", 50),
		},
		{
			name:        "empty input",
			input:       "",
			maxLength:   100,
			expectError: true,
		},
		{
			name:        "only dangerous characters",
			input:       "@#$%",
			maxLength:   100,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SanitizeIdentifier(tt.input, tt.maxLength)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got result %q", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("SanitizeIdentifier(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidateFileSizeLimit(t *testing.T) {
	tempDir := t.TempDir()

	smallFile := filepath.Join(tempDir, "small.md")
	if err := os.WriteFile(smallFile, []byte("small content"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	largeFile := filepath.Join(tempDir, "large.md")
	if err := os.WriteFile(largeFile, make([]byte, 2048), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	t.Run("file within limit", func(t *testing.T) {
		if err := ValidateFileSizeLimit(smallFile, 1024); err != nil {
			t.Errorf("Expected no error for small file, got: %v", err)
		}
	})

	t.Run("file exceeds limit", func(t *testing.T) {
		err := ValidateFileSizeLimit(largeFile, 1024)
		if err == nil {
			t.Error("Expected error for oversized file")
		} else if !strings.Contains(err.Error(), "exceeds limit") {
			t.Errorf("Expected size limit error, got: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		err := ValidateFileSizeLimit(filepath.Join(tempDir, "missing.md"), 1024)
		if err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("directory instead of file", func(t *testing.T) {
		err := ValidateFileSizeLimit(tempDir, 1024)
		if err == nil {
			t.Error("Expected error for directory")
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		err := ValidateFileSizeLimit(smallFile, 0)
		if err == nil {
			t.Error("Expected error for zero limit")
		}
	})
}
