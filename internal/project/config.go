package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"jsmin/internal/bind"
	"jsmin/internal/rewrite"
)

// Config is the contents of jsmin.toml / jsmin.yaml. Zero sections keep
// their defaults; command-line flags are applied on top by the caller.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis" yaml:"analysis"`
	Output   OutputConfig   `toml:"output" yaml:"output"`
	Crunch   CrunchConfig   `toml:"crunch" yaml:"crunch"`
	Cache    CacheConfig    `toml:"cache" yaml:"cache"`

	// Path is the file the config came from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

type AnalysisConfig struct {
	StripDebug         bool     `toml:"strip-debug" yaml:"strip-debug"`
	DebugLookups       []string `toml:"debug-lookups" yaml:"debug-lookups"`
	KnownGlobals       []string `toml:"known-globals" yaml:"known-globals"`
	MaxDepth           int      `toml:"max-depth" yaml:"max-depth"`
	WarningsAsErrors   bool     `toml:"warnings-as-errors" yaml:"warnings-as-errors"`
	ReportUnreferenced bool     `toml:"report-unreferenced" yaml:"report-unreferenced"`
	// MaxLevel drops diagnostics less severe than this level (0..4).
	MaxLevel int `toml:"max-level" yaml:"max-level"`
}

type OutputConfig struct {
	Format         string `toml:"format" yaml:"format"`
	MaxDiagnostics int    `toml:"max-diagnostics" yaml:"max-diagnostics"`
	Color          string `toml:"color" yaml:"color"`
}

type CrunchConfig struct {
	Enabled  bool     `toml:"enabled" yaml:"enabled"`
	Reserved []string `toml:"reserved" yaml:"reserved"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Dir     string `toml:"dir" yaml:"dir"`
}

var (
	// ErrUnknownKey reports keys the config schema does not know.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue reports a known key with an unusable value.
	ErrInvalidValue = errors.New("invalid config value")
)

// OutputFormats lists the accepted values of [output].format.
var OutputFormats = []string{"pretty", "short", "json", "sarif"}

// ColorModes lists the accepted values of [output].color.
var ColorModes = []string{"auto", "on", "off"}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Analysis: AnalysisConfig{
			DebugLookups: slices.Clone(rewrite.DefaultDebugLookups),
			MaxDepth:     bind.DefaultMaxDepth,
			MaxLevel:     4,
		},
		Output: OutputConfig{
			Format:         "pretty",
			MaxDiagnostics: 100,
			Color:          "auto",
		},
		Crunch: CrunchConfig{Enabled: true},
	}
}

// LoadConfig reads a config file; the format follows the extension.
func LoadConfig(path string) (Config, error) {
	// #nosec G304 -- path comes from FindConfig or the --config flag
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	default:
		return ParseTOML(path, data)
	}
}

// ParseTOML decodes TOML config text over the defaults.
func ParseTOML(path string, data []byte) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	cfg.Path = path
	return cfg, cfg.Validate()
}

// ParseYAML decodes YAML config text over the defaults.
func ParseYAML(path string, data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// an empty document decodes to io.EOF and means "all defaults"
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		if strings.Contains(err.Error(), "not found in type") {
			return Config{}, fmt.Errorf("%s: %w: %v", path, ErrUnknownKey, err)
		}
		return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	cfg.Path = path
	return cfg, cfg.Validate()
}

// Validate checks values the decoders cannot.
func (c Config) Validate() error {
	where := c.Path
	if where == "" {
		where = "config"
	}
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return fmt.Errorf("%s: %w: output.format %q (expected: %s)", where, ErrInvalidValue, c.Output.Format, strings.Join(OutputFormats, "|"))
	}
	if !slices.Contains(ColorModes, c.Output.Color) {
		return fmt.Errorf("%s: %w: output.color %q (expected: %s)", where, ErrInvalidValue, c.Output.Color, strings.Join(ColorModes, "|"))
	}
	if c.Analysis.MaxDepth < 0 {
		return fmt.Errorf("%s: %w: analysis.max-depth must not be negative", where, ErrInvalidValue)
	}
	if c.Analysis.MaxLevel < 0 || c.Analysis.MaxLevel > 4 {
		return fmt.Errorf("%s: %w: analysis.max-level must be within 0..4", where, ErrInvalidValue)
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("%s: %w: output.max-diagnostics must not be negative", where, ErrInvalidValue)
	}
	return nil
}

// Discover finds the config for startDir, falling back to the defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// Fingerprint hashes the settings that change per-unit results, so cached
// results are invalidated when any of them changes.
func (c Config) Fingerprint() Digest {
	key := struct {
		Analysis AnalysisConfig `toml:"analysis"`
		Crunch   CrunchConfig   `toml:"crunch"`
	}{c.Analysis, c.Crunch}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(key); err != nil {
		// only plain values are encoded; an error here is a programming fault
		panic(fmt.Errorf("config fingerprint: %w", err))
	}
	return ContentDigest(buf.String())
}
