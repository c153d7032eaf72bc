package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"frametrim/domain/video"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override key
const EnvPrefix = "FRAMETRIM_"

// Config represents the complete application configuration
type Config struct {
	FFmpeg   FFmpegConfig   `yaml:"ffmpeg"`
	Decoder  DecoderConfig  `yaml:"decoder"`
	Playback PlaybackConfig `yaml:"playback"`
	Trim     TrimConfig     `yaml:"trim"`
	Formats  FormatsConfig  `yaml:"formats"`
	Preview  PreviewConfig  `yaml:"preview"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// FFmpegConfig locates the external encoder binaries
type FFmpegConfig struct {
	Path        string `yaml:"path" env:"FFMPEG_PATH" validate:"required"`
	FFprobePath string `yaml:"ffprobe_path" env:"FFPROBE_PATH" validate:"required"`
}

// DecoderConfig selects the frame decoding backend
type DecoderConfig struct {
	Backend string `yaml:"backend" env:"DECODER_BACKEND" validate:"oneof=ffmpeg opencv"`
}

// PlaybackConfig contains playback clock settings
type PlaybackConfig struct {
	TickIntervalMS int `yaml:"tick_interval_ms" env:"TICK_INTERVAL_MS" validate:"gte=1,lte=1000"`
}

// TrimConfig contains trim output settings
type TrimConfig struct {
	Suffix string `yaml:"suffix" env:"TRIM_SUFFIX" validate:"required,excludesall=/\\"`
	Reveal bool   `yaml:"reveal" env:"TRIM_REVEAL"`
}

// FormatsConfig contains the drop allow-list
type FormatsConfig struct {
	VideoExtensions []string `yaml:"video_extensions" env:"VIDEO_EXTENSIONS" validate:"min=1,dive,required"`
}

// PreviewConfig controls the rendering surface
type PreviewConfig struct {
	Path   string `yaml:"path" env:"PREVIEW_PATH"`
	Width  int    `yaml:"width" env:"PREVIEW_WIDTH" validate:"gte=16"`
	Height int    `yaml:"height" env:"PREVIEW_HEIGHT" validate:"gte=16"`
	HUD    bool   `yaml:"hud" env:"PREVIEW_HUD"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn warning error quiet silent"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		FFmpeg: FFmpegConfig{
			Path:        "ffmpeg",
			FFprobePath: "ffprobe",
		},
		Decoder:  DecoderConfig{Backend: "ffmpeg"},
		Playback: PlaybackConfig{TickIntervalMS: 30},
		Trim: TrimConfig{
			Suffix: video.DefaultTrimSuffix,
			Reveal: true,
		},
		Formats: FormatsConfig{
			VideoExtensions: append([]string(nil), video.DefaultVideoExtensions...),
		},
		Preview: PreviewConfig{
			Width:  960,
			Height: 540,
			HUD:    true,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults, applies FRAMETRIM_*
// environment overrides and validates the result. A missing file is not an
// error when optional is true.
func Load(path string, optional bool) (*Config, error) {
	return LoadWith(context.Background(), path, optional, envconfig.OsLookuper())
}

// LoadWith is Load with an injectable environment lookuper
func LoadWith(ctx context.Context, path string, optional bool, env envconfig.Lookuper) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case optional && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != nil {
		if err := envconfig.ProcessWith(ctx, &envconfig.Config{
			Target:           cfg,
			Lookuper:         envconfig.PrefixLookuper(EnvPrefix, env),
			DefaultOverwrite: true,
		}); err != nil {
			return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
