// Package manifest reads project metadata from pyproject.toml.
// Only the [project] table matters to the bundler: its name and version
// feed the bundle banner and the version stamper. A missing manifest is
// never an error; the banner simply degrades.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestFileName is the project manifest expected at the project root
const ManifestFileName = "pyproject.toml"

// Info holds the optional project metadata used by the bundler
type Info struct {
	Name    string
	Version string
}

// pyproject mirrors the subset of pyproject.toml the bundler reads
type pyproject struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
}

// Read returns the [project] name and version from pyproject.toml at the
// project root. Missing file, unreadable file, or a malformed manifest all
// yield empty metadata rather than an error.
func Read(projectRoot string) Info {
	data, err := os.ReadFile(filepath.Join(projectRoot, ManifestFileName))
	if err != nil {
		return Info{}
	}

	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Info{}
	}

	return Info{
		Name:    doc.Project.Name,
		Version: doc.Project.Version,
	}
}
