package buildcfg

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"lcb/internal/errors"
)

// ConfigFileName is the build configuration file expected at the project root
const ConfigFileName = ".buildrc"

// requiredKeys are the .buildrc keys a build cannot run without
var requiredKeys = []string{"src_dir", "dist_dir", "output", "module_roots"}

// Config represents the complete .buildrc configuration
type Config struct {
	SrcDir        string   `json:"src_dir" mapstructure:"src_dir"`
	DistDir       string   `json:"dist_dir" mapstructure:"dist_dir"`
	Output        string   `json:"output" mapstructure:"output"`
	ModuleRoots   []string `json:"module_roots" mapstructure:"module_roots"`
	Prepend       []string `json:"prepend,omitempty" mapstructure:"prepend"`
	StripRequires bool     `json:"strip_requires,omitempty" mapstructure:"strip_requires"`
	ExcludeGlobs  []string `json:"exclude_globs,omitempty" mapstructure:"exclude_globs"`
	Compress      bool     `json:"compress,omitempty" mapstructure:"compress"`
	VersionGlobal string   `json:"version_global,omitempty" mapstructure:"version_global"`

	Logging LoggingConfig `json:"logging,omitempty" mapstructure:"logging"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format,omitempty" mapstructure:"format"`
	Level  string `json:"level,omitempty" mapstructure:"level"`
}

// DefaultConfig returns the configuration written by `lcb init`
func DefaultConfig() *Config {
	return &Config{
		SrcDir:        "src",
		DistDir:       "dist",
		Output:        "bundle.lua",
		ModuleRoots:   []string{"src"},
		Prepend:       []string{},
		StripRequires: true,
		ExcludeGlobs:  []string{},
		VersionGlobal: "HARNESS_VERSION",
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads .buildrc from the project root.
// A missing file is CONFIG_MISSING; a malformed file or one lacking
// required keys is CONFIG_INVALID naming the missing keys.
func LoadConfig(projectRoot string) (*Config, error) {
	configPath := filepath.Join(projectRoot, ConfigFileName)

	if _, err := os.Stat(configPath); err != nil {
		return nil, errors.NewBuildError(errors.ConfigMissing,
			ConfigFileName+" not found at project root", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetDefault("strip_requires", false)
	v.SetDefault("version_global", "HARNESS_VERSION")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewBuildError(errors.ConfigInvalid,
			"failed to parse "+ConfigFileName, err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewBuildError(errors.ConfigInvalid,
			ConfigFileName+" missing required keys: "+strings.Join(missing, ", "), nil)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewBuildError(errors.ConfigInvalid,
			"failed to decode "+ConfigFileName, err)
	}

	return &cfg, nil
}

// Save writes the configuration to .buildrc at the project root
func (c *Config) Save(projectRoot string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectRoot, ConfigFileName), append(data, '\n'), 0644)
}

// OutputPath resolves the artifact path. An output value containing a path
// separator is taken relative to the project root; a bare filename lands in
// the dist directory.
func (c *Config) OutputPath(projectRoot string) string {
	if strings.ContainsAny(c.Output, "/\\") {
		return filepath.Join(projectRoot, filepath.FromSlash(c.Output))
	}
	return filepath.Join(projectRoot, c.DistDir, c.Output)
}
