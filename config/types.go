package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// FeedConfig describes the upstream location feed being polled
type FeedConfig struct {
	Source         string `yaml:"source" validate:"omitempty,oneof=json gtfsrt"`
	EndpointURL    string `yaml:"endpointURL" validate:"omitempty,url"`
	VehicleID      string `yaml:"vehicleID" validate:"omitempty"`
	PollIntervalMS int    `yaml:"pollIntervalMS" validate:"gte=0"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
}

// AnimationConfig controls marker movement between samples
type AnimationConfig struct {
	DurationMS int `yaml:"durationMS" validate:"gte=0"`
}

// MapConfig contains the initial viewport and tile layer settings for the
// served map page
type MapConfig struct {
	CenterLat   float64 `yaml:"centerLat" validate:"gte=-90,lte=90"`
	CenterLon   float64 `yaml:"centerLon" validate:"gte=-180,lte=180"`
	Zoom        int     `yaml:"zoom" validate:"gte=0,lte=22"`
	TileURL     string  `yaml:"tileURL" validate:"omitempty"`
	Attribution string  `yaml:"attribution" validate:"omitempty"`
	AccessToken string  `yaml:"accessToken" validate:"omitempty"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Feed      FeedConfig      `yaml:"feed" validate:"required"`
	Animation AnimationConfig `yaml:"animation"`
	Map       MapConfig       `yaml:"map"`
	Logging   LoggingConfig   `yaml:"logging"`
}
