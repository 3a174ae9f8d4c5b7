package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config represents the application configuration. It is built once at
// startup and passed around by value.
type Config struct {
	OCR OCRConfig  `toml:"ocr" yaml:"ocr"`
	UI  UISettings `toml:"ui" yaml:"ui"`
}

// OCRConfig describes how the external OCR tool is invoked
type OCRConfig struct {
	Binary       string   `toml:"binary" yaml:"binary"`
	ForceOCR     bool     `toml:"force_ocr" yaml:"force_ocr"`
	ImageDPI     int      `toml:"image_dpi" yaml:"image_dpi"`
	ExtraArgs    []string `toml:"extra_args" yaml:"extra_args"`
	Suffix       string   `toml:"suffix" yaml:"suffix"`         // appended to the input stem
	OutputExt    string   `toml:"output_ext" yaml:"output_ext"` // replaces the input extension
	VerifyOutput bool     `toml:"verify_output" yaml:"verify_output"`
	Timeout      Duration `toml:"timeout" yaml:"timeout"` // per file, 0 means no limit
}

// UISettings represents UI-related configuration
type UISettings struct {
	Columns      int      `toml:"columns" yaml:"columns"`
	StartDir     string   `toml:"start_dir" yaml:"start_dir"`
	AllowedTypes []string `toml:"allowed_types" yaml:"allowed_types"`
	ShowHidden   bool     `toml:"show_hidden" yaml:"show_hidden"`
}

// Duration is a time.Duration that decodes from strings like "90s"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler (used by go-toml)
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// DefaultAllowedTypes mirrors the file dialog filters: PDF plus common raster images
var DefaultAllowedTypes = []string{".pdf", ".png", ".jpg", ".jpeg", ".tiff", ".gif"}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	startDir, err := os.Getwd()
	if err != nil {
		startDir = "."
	}

	return Config{
		OCR: OCRConfig{
			Binary:       "ocrmypdf",
			ForceOCR:     true,
			ImageDPI:     300,
			Suffix:       "_ocr",
			OutputExt:    ".pdf",
			VerifyOutput: true,
		},
		UI: UISettings{
			Columns:      3,
			StartDir:     startDir,
			AllowedTypes: append([]string(nil), DefaultAllowedTypes...),
		},
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(configDir, "ocrdesk", "config.toml"), nil
}

// Load reads the config file at path on top of the defaults
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := decode(path, data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when given. Without a path it falls back to the
// per-user file if one exists and to the defaults otherwise. The returned
// string is the file actually used ("" for defaults).
func LoadOrDefault(path string) (Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	defPath, err := DefaultPath()
	if err != nil {
		return DefaultConfig(), "", nil
	}
	if _, err := os.Stat(defPath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), "", nil
	}
	cfg, err := Load(defPath)
	return cfg, defPath, err
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// normalize lowercases extensions so "PDF" and ".pdf" compare equal
func (c *Config) normalize() {
	c.OCR.OutputExt = normalizeExt(c.OCR.OutputExt)
	for i, ext := range c.UI.AllowedTypes {
		c.UI.AllowedTypes[i] = normalizeExt(ext)
	}
}

// PickerTypes returns the allowed extensions in both lower and upper case.
// The file picker matches suffixes case-sensitively.
func (u UISettings) PickerTypes() []string {
	types := make([]string, 0, 2*len(u.AllowedTypes))
	for _, ext := range u.AllowedTypes {
		types = append(types, ext)
		if upper := strings.ToUpper(ext); upper != ext {
			types = append(types, upper)
		}
	}
	return types
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Validate reports every problem with the configuration at once
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.OCR.Binary) == "" {
		errs = append(errs, errors.New("ocr.binary must not be empty"))
	}
	if c.OCR.ImageDPI <= 0 {
		errs = append(errs, fmt.Errorf("ocr.image_dpi must be positive, got %d", c.OCR.ImageDPI))
	}
	if c.OCR.Suffix == "" {
		errs = append(errs, errors.New("ocr.suffix must not be empty"))
	}
	if !strings.HasPrefix(c.OCR.OutputExt, ".") || len(c.OCR.OutputExt) < 2 {
		errs = append(errs, fmt.Errorf("ocr.output_ext must look like \".pdf\", got %q", c.OCR.OutputExt))
	}
	if c.OCR.Timeout.Duration < 0 {
		errs = append(errs, errors.New("ocr.timeout must not be negative"))
	}
	if c.UI.Columns < 1 {
		errs = append(errs, fmt.Errorf("ui.columns must be at least 1, got %d", c.UI.Columns))
	}
	for _, ext := range c.UI.AllowedTypes {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("ui.allowed_types entry %q must start with a dot", ext))
		}
	}
	return errors.Join(errs...)
}
