// Package config provides reading and writing of tasklens configuration.
// Supports both global (~/.tasklens/config.yaml) and local (.tasklens/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/tasklens/internal/pattern"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.tasklens/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is workspace-specific config in .tasklens/config.yaml
	ScopeLocal
)

// Model holds external model endpoint configuration. Embed model identity
// is shared between indexing and querying; changing it invalidates every
// stored embedding, which the next refresh rebuilds.
type Model struct {
	BaseURL        string `yaml:"base_url,omitempty"`
	EmbedModel     string `yaml:"embed_model,omitempty"`
	SummarizeModel string `yaml:"summarize_model,omitempty"`
}

// Search holds search tuning options.
type Search struct {
	TopK     *int     `yaml:"top_k,omitempty"`
	MinScore *float64 `yaml:"min_score,omitempty"`
}

// Validation bounds for configuration values.
const (
	MinTopK = 1
	MaxTopK = 100
)

// Config contains configuration for tasklens.
//
// Tags maps declarative tag names to pattern lists. Entries can be strings
// ("npm:*") or structured mappings ({type: shell}); both decode through the
// pattern package. The reserved "quick" tag must not appear here - quick
// launch membership is explicit only.
type Config struct {
	Tags   map[string][]yaml.Node `yaml:"tags,omitempty"`
	Model  Model                  `yaml:"model,omitempty"`
	Search Search                 `yaml:"search,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.Search.TopK != nil {
		v := *c.Search.TopK
		if v < MinTopK || v > MaxTopK {
			return fmt.Errorf("%w: top_k must be between %d and %d, got %d",
				ErrInvalidValue, MinTopK, MaxTopK, v)
		}
	}
	if c.Search.MinScore != nil {
		v := *c.Search.MinScore
		if v < -1 || v > 1 {
			return fmt.Errorf("%w: min_score must be between -1 and 1, got %v", ErrInvalidValue, v)
		}
	}
	for name := range c.Tags {
		if name == "quick" {
			return fmt.Errorf("%w: tag %q is reserved for explicit pinning and cannot be declarative", ErrInvalidValue, name)
		}
	}
	return nil
}

// TagPatterns decodes the declarative tag pattern lists. Tag names map to
// decoded pattern unions, in config order.
func (c *Config) TagPatterns() map[string][]pattern.Pattern {
	out := make(map[string][]pattern.Pattern, len(c.Tags))
	for name, nodes := range c.Tags {
		out[name] = pattern.ListFromYAML(nodes)
	}
	return out
}

// TopK returns the configured result limit (defaults to 10).
func (c *Config) TopK() int {
	if c.Search.TopK == nil {
		return 10
	}
	return *c.Search.TopK
}

// MinScore returns the minimum similarity for search results (defaults to 0.3).
func (c *Config) MinScore() float64 {
	if c.Search.MinScore == nil {
		return 0.3
	}
	return *c.Search.MinScore
}

// LocalPath returns the path to the local (workspace) config file.
func LocalPath() string {
	return filepath.Join(".tasklens", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.tasklens/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tasklens", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
