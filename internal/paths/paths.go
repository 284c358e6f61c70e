package paths

import (
	"path/filepath"
	"strings"
)

// RelToProject converts an absolute path to a project-relative path with
// forward slashes. Marker lines in the bundle carry these paths, so they
// must be stable across platforms. If the path cannot be made relative,
// the slash-normalized input is returned as-is.
func RelToProject(projectRoot string, absolutePath string) string {
	relativePath, err := filepath.Rel(projectRoot, absolutePath)
	if err != nil {
		return filepath.ToSlash(absolutePath)
	}
	return filepath.ToSlash(relativePath)
}

// IsWithinProject checks if a path is within the project root
func IsWithinProject(path string, projectRoot string) bool {
	relativePath, err := filepath.Rel(projectRoot, path)
	if err != nil {
		return false
	}
	return relativePath != ".." && !strings.HasPrefix(relativePath, "../")
}

// NormalizePath normalizes a path by converting backslashes to forward slashes
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}

// JoinProjectPath joins the project root with a slash-separated relative path
func JoinProjectPath(projectRoot string, relativePath string) string {
	normalizedPath := strings.ReplaceAll(relativePath, "\\", "/")
	parts := strings.Split(normalizedPath, "/")
	return filepath.Join(append([]string{projectRoot}, parts...)...)
}
