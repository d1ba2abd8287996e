package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/repotree/checksum"
	"github.com/brettbedarf/repotree/internal/util"
	"github.com/brettbedarf/repotree/tree"
	"gopkg.in/yaml.v3"
)

// Log verbosity as used by the CLI and config files, 1 (error) to 5 (trace)
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultMetadataName is the file name of generated directory metadata
	DefaultMetadataName = tree.DefaultMetadataName

	// DefaultChecksumAlgorithm digests the generated metadata
	DefaultChecksumAlgorithm = checksum.Default

	// DefaultAllowOverwrite applies to manifest entries that do not say
	DefaultAllowOverwrite = false
)

// Config contains runtime configuration values for the repository tree.
type Config struct {
	LogLvl            util.LogLevel      // Internal log level (Default Info)
	MetadataName      string             // Name of generated metadata elements (Default maven-metadata.xml)
	ChecksumAlgorithm checksum.Algorithm // Digest for the metadata checksum element (Default md5)
	AllowOverwrite    bool               // Replace same-named elements on insert (Default false)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	LogLvl            *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"` // CLI verbosity 1-5
	MetadataName      *string `yaml:"metadata_name,omitempty" json:"metadata_name,omitempty"`
	ChecksumAlgorithm *string `yaml:"checksum_algorithm,omitempty" json:"checksum_algorithm,omitempty"`
	AllowOverwrite    *bool   `yaml:"allow_overwrite,omitempty" json:"allow_overwrite,omitempty"`
}

// NewConfig creates a new Config from defaults with any non-nil override
// values applied on top
func NewConfig(override *ConfigOverride) *Config {
	cfg := &Config{
		LogLvl:            DefaultLogLvl,
		MetadataName:      DefaultMetadataName,
		ChecksumAlgorithm: DefaultChecksumAlgorithm,
		AllowOverwrite:    DefaultAllowOverwrite,
	}
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = util.LevelFromVerbosity(*override.LogLvl)
	}
	if override.MetadataName != nil {
		c.MetadataName = *override.MetadataName
	}
	if override.ChecksumAlgorithm != nil {
		// validated later so an unknown name is reported instead of silently defaulted
		c.ChecksumAlgorithm = checksum.Algorithm(strings.ToLower(*override.ChecksumAlgorithm))
	}
	if override.AllowOverwrite != nil {
		c.AllowOverwrite = *override.AllowOverwrite
	}
}

// Validate reports values the tree cannot work with
func (c *Config) Validate() error {
	if c.MetadataName == "" {
		return fmt.Errorf("metadata name must not be empty")
	}
	if strings.Contains(c.MetadataName, "/") {
		return fmt.Errorf("metadata name must not contain '/': %q", c.MetadataName)
	}
	if !c.ChecksumAlgorithm.Valid() {
		return fmt.Errorf("unknown checksum algorithm: %q", c.ChecksumAlgorithm)
	}
	return nil
}

// MetadataSpec returns the tree settings derived from the config
func (c *Config) MetadataSpec() tree.MetadataSpec {
	return tree.MetadataSpec{Name: c.MetadataName, Algorithm: c.ChecksumAlgorithm}
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new validated Config by merging file overrides with defaults.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewConfig(override)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
