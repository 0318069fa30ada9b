package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied after validation when the corresponding key is absent.
const (
	DefaultPort           = 8080
	DefaultSource         = "json"
	DefaultPollIntervalMS = 5000
	DefaultTimeoutMS      = 10000
	DefaultDurationMS     = 2000
	DefaultZoom           = 15
	DefaultTileURL        = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution    = "&copy; OpenStreetMap contributors"
	DefaultLogLevel       = "info"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration. An empty
// path falls back to config.yml in the working directory.
func LoadAppConfig(path string) error {
	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "./config/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = applyDefaults(cfg)
	return nil
}

func applyDefaults(cfg AppConfig) AppConfig {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Feed.Source == "" {
		cfg.Feed.Source = DefaultSource
	}
	if cfg.Feed.PollIntervalMS == 0 {
		cfg.Feed.PollIntervalMS = DefaultPollIntervalMS
	}
	if cfg.Feed.TimeoutMS == 0 {
		cfg.Feed.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.Animation.DurationMS == 0 {
		cfg.Animation.DurationMS = DefaultDurationMS
	}
	if cfg.Map.Zoom == 0 {
		cfg.Map.Zoom = DefaultZoom
	}
	if cfg.Map.TileURL == "" {
		cfg.Map.TileURL = DefaultTileURL
	}
	if cfg.Map.Attribution == "" {
		cfg.Map.Attribution = DefaultAttribution
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	return cfg
}
