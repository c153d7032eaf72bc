package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Errors for config management
var (
	ErrUnknownKey   = errors.New("unknown config key")
	ErrInvalidValue = errors.New("invalid config value")
)

// ConfigManager reads and writes individual settings by dotted key
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

// Setting is one key/value pair for listing
type Setting struct {
	Key   string
	Value string
}

type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringField(p func(c *Config) *string) field {
	return field{
		get: func(c *Config) string { return *p(c) },
		set: func(c *Config, v string) error {
			*p(c) = strings.TrimSpace(v)
			return nil
		},
	}
}

func intField(p func(c *Config) *int) field {
	return field{
		get: func(c *Config) string { return strconv.Itoa(*p(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, v)
			}
			*p(c) = n
			return nil
		},
	}
}

func boolField(p func(c *Config) *bool) field {
	return field{
		get: func(c *Config) string { return strconv.FormatBool(*p(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
			}
			*p(c) = b
			return nil
		},
	}
}

var fields = map[string]field{
	"ffmpeg.path":               stringField(func(c *Config) *string { return &c.FFmpeg.Path }),
	"ffmpeg.ffprobe_path":       stringField(func(c *Config) *string { return &c.FFmpeg.FFprobePath }),
	"decoder.backend":           stringField(func(c *Config) *string { return &c.Decoder.Backend }),
	"playback.tick_interval_ms": intField(func(c *Config) *int { return &c.Playback.TickIntervalMS }),
	"trim.suffix":               stringField(func(c *Config) *string { return &c.Trim.Suffix }),
	"trim.reveal":               boolField(func(c *Config) *bool { return &c.Trim.Reveal }),
	"preview.path":              stringField(func(c *Config) *string { return &c.Preview.Path }),
	"preview.width":             intField(func(c *Config) *int { return &c.Preview.Width }),
	"preview.height":            intField(func(c *Config) *int { return &c.Preview.Height }),
	"preview.hud":               boolField(func(c *Config) *bool { return &c.Preview.HUD }),
	"logging.level":             stringField(func(c *Config) *string { return &c.Logging.Level }),
	"formats.video_extensions": {
		get: func(c *Config) string { return strings.Join(c.Formats.VideoExtensions, ",") },
		set: func(c *Config, v string) error {
			var exts []string
			for _, e := range strings.Split(v, ",") {
				if e = strings.TrimSpace(e); e != "" {
					exts = append(exts, e)
				}
			}
			c.Formats.VideoExtensions = exts
			return nil
		},
	},
}

// Keys returns every settable key in sorted order
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the current value of key
func (m *ConfigManager) Get(key string) (string, error) {
	f, ok := fields[normalizeKey(key)]
	if !ok {
		return "", unknownKey(key)
	}
	return f.get(m.config), nil
}

// List returns all settings sorted by key
func (m *ConfigManager) List() []Setting {
	out := make([]Setting, 0, len(fields))
	for _, k := range Keys() {
		out = append(out, Setting{Key: k, Value: fields[k].get(m.config)})
	}
	return out
}

// Set updates key, validates the whole config and saves it. On any failure
// the in-memory config is left unchanged.
func (m *ConfigManager) Set(key, value string) error {
	f, ok := fields[normalizeKey(key)]
	if !ok {
		return unknownKey(key)
	}

	next := *m.config
	next.Formats.VideoExtensions = append([]string(nil), m.config.Formats.VideoExtensions...)
	if err := f.set(&next, value); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	*m.config = next
	return m.save()
}

func (m *ConfigManager) save() error {
	if m.configPath == "" {
		return nil
	}
	return Save(m.config, m.configPath)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func unknownKey(key string) error {
	return fmt.Errorf("%w: %q (available: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
}
