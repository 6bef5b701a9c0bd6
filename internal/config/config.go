// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for rigdiag.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.rigdiag/config.toml
//   - ~/.rigdiag/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/rigdiag/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete rigdiag configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Content selects the solutions shown when no flag overrides them.
	Content ContentConfig `toml:"content" json:"content"`

	UI     UIConfig     `toml:"ui" json:"ui"`
	Motion MotionConfig `toml:"motion" json:"motion"`
	Log    LogConfig    `toml:"log" json:"log"`
}

// ContentConfig names the solution file and the question it answers.
type ContentConfig struct {
	// SolutionsFile is a .yaml, .yml or .json solution list. Empty means the
	// built-in sample.
	SolutionsFile string `toml:"solutions_file" json:"solutions_file"`
	// Question is the user prompt shown above the assistant reply. Empty
	// means the sample question.
	Question string `toml:"question" json:"question"`
}

// UIConfig contains layout configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// Compact is the compact layout mode: "auto", "on", "off"
	Compact string `toml:"compact" json:"compact"`
	// CompactBreakpoint is the viewport width in pixels below which the
	// layout is compact when Compact is "auto".
	CompactBreakpoint int `toml:"compact_breakpoint" json:"compact_breakpoint"`
	// CellWidth is the assumed width of one terminal column in pixels.
	CellWidth int `toml:"cell_width" json:"cell_width"`
	// TruncateLength is the character limit for compact source titles.
	TruncateLength int `toml:"truncate_length" json:"truncate_length"`
	// AnimationFPS is the frame rate of disclosure animations.
	AnimationFPS int `toml:"animation_fps" json:"animation_fps"`
}

// MotionConfig contains reduced-motion preference settings.
type MotionConfig struct {
	// ReducedMotion forces the preference: "auto", "on", "off"
	ReducedMotion string `toml:"reduced_motion" json:"reduced_motion"`
	// PreferenceFile is watched for "reduce" / "no-preference" contents.
	PreferenceFile string `toml:"preference_file" json:"preference_file"`
	// UseDesktopSetting consults the desktop animation setting.
	UseDesktopSetting bool `toml:"use_desktop_setting" json:"use_desktop_setting"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" json:"level"`
	// Path is the log file. "-" means stderr; empty means ~/.rigdiag/rigdiag.log.
	Path string `toml:"path" json:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default values shared with the UI packages.
const (
	DefaultCompactBreakpoint = 768
	DefaultCellWidth         = 8
	DefaultTruncateLength    = 20
	DefaultAnimationFPS      = 60
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		UI: UIConfig{
			Theme:             "auto",
			Compact:           "auto",
			CompactBreakpoint: DefaultCompactBreakpoint,
			CellWidth:         DefaultCellWidth,
			TruncateLength:    DefaultTruncateLength,
			AnimationFPS:      DefaultAnimationFPS,
		},

		Motion: MotionConfig{
			ReducedMotion:     "auto",
			UseDesktopSetting: true,
		},

		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the rigdiag configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".rigdiag"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogPath returns ~/.rigdiag/rigdiag.log.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rigdiag.log"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last. A file that fails to decode is
// reported alongside the defaults so callers can warn and continue.
func Load() (*Config, error) {
	var loadErr error

	candidates := []struct {
		path func() (string, error)
		load func(*Config, string) error
		kind string
	}{
		{ConfigPathTOML, LoadTOML, "TOML"},
		{ConfigPathJSON, LoadJSON, "JSON"},
	}

	for _, c := range candidates {
		path, err := c.path()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg := Default()
		if err := c.load(cfg, path); err != nil {
			loadErr = fmt.Errorf("failed to load %s config: %w", c.kind, err)
			continue
		}
		if err := cfg.finish(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies env overrides, migration, defaults and validation in order.
func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	c.Migrate()
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# rigdiag configuration file\n")
	b.WriteString("# Generated by rigdiag - edit with care\n\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validModes  = map[string]bool{"auto": true, "on": true, "off": true}
	validThemes = map[string]bool{"auto": true, "dark": true, "light": true}
	validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// UI Settings Validation
	// ==========================================================================

	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if !validModes[strings.ToLower(c.UI.Compact)] {
		errs = append(errs, ValidationError{
			Field:   "ui.compact",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: auto, on, off", c.UI.Compact),
		})
	}
	if c.UI.CompactBreakpoint <= 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.compact_breakpoint",
			Message: fmt.Sprintf("must be positive, got %d", c.UI.CompactBreakpoint),
		})
	}
	if c.UI.CellWidth <= 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.cell_width",
			Message: fmt.Sprintf("must be positive, got %d", c.UI.CellWidth),
		})
	}
	// The ellipsis takes three characters, so anything shorter cannot show a title.
	if c.UI.TruncateLength <= 3 {
		errs = append(errs, ValidationError{
			Field:   "ui.truncate_length",
			Message: fmt.Sprintf("must be greater than 3, got %d", c.UI.TruncateLength),
		})
	}
	if c.UI.AnimationFPS < 1 || c.UI.AnimationFPS > 240 {
		errs = append(errs, ValidationError{
			Field:   "ui.animation_fps",
			Message: fmt.Sprintf("must be between 1 and 240, got %d", c.UI.AnimationFPS),
		})
	}

	// ==========================================================================
	// Motion Settings Validation
	// ==========================================================================

	if !validModes[strings.ToLower(c.Motion.ReducedMotion)] {
		errs = append(errs, ValidationError{
			Field:   "motion.reduced_motion",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: auto, on, off", c.Motion.ReducedMotion),
		})
	}

	// ==========================================================================
	// Log Settings Validation
	// ==========================================================================

	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value configuration fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.Compact == "" {
		c.UI.Compact = defaults.UI.Compact
	}
	if c.UI.CompactBreakpoint == 0 {
		c.UI.CompactBreakpoint = defaults.UI.CompactBreakpoint
	}
	if c.UI.CellWidth == 0 {
		c.UI.CellWidth = defaults.UI.CellWidth
	}
	if c.UI.TruncateLength == 0 {
		c.UI.TruncateLength = defaults.UI.TruncateLength
	}
	if c.UI.AnimationFPS == 0 {
		c.UI.AnimationFPS = defaults.UI.AnimationFPS
	}

	if c.Motion.ReducedMotion == "" {
		c.Motion.ReducedMotion = defaults.Motion.ReducedMotion
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Migrate normalizes older or alternate spellings of mode values.
func (c *Config) Migrate() {
	c.UI.Compact = normalizeMode(c.UI.Compact)
	c.Motion.ReducedMotion = normalizeMode(c.Motion.ReducedMotion)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "warning" {
		c.Log.Level = "warn"
	}
}

// normalizeMode maps boolean spellings onto on/off.
func normalizeMode(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "true", "yes", "1", "reduce":
		return "on"
	case "false", "no", "0", "no-preference":
		return "off"
	}
	return v
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - RIGDIAG_COMPACT: overrides ui.compact
//   - RIGDIAG_REDUCED_MOTION: overrides motion.reduced_motion
//   - RIGDIAG_LOG_LEVEL: overrides log.level
//   - RIGDIAG_LOG_FILE: overrides log.path
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RIGDIAG_COMPACT"); v != "" {
		c.UI.Compact = v
	}
	if v := os.Getenv("RIGDIAG_REDUCED_MOTION"); v != "" {
		c.Motion.ReducedMotion = v
	}
	if v := os.Getenv("RIGDIAG_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("RIGDIAG_LOG_FILE"); v != "" {
		c.Log.Path = v
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "ui.truncate_length").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.compact").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strVal)
			if err != nil {
				lower := strings.ToLower(strVal)
				boolVal = lower == "yes" || lower == "on"
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"content.solutions_file",
		"content.question",
		"ui.theme",
		"ui.compact",
		"ui.compact_breakpoint",
		"ui.cell_width",
		"ui.truncate_length",
		"ui.animation_fps",
		"motion.reduced_motion",
		"motion.preference_file",
		"motion.use_desktop_setting",
		"log.level",
		"log.path",
	}
}

// String returns the config as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
