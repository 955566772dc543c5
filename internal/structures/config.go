package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Dir         string `yaml:"dir" validate:"required|unixPath"`
	Compression bool   `yaml:"compression"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type OfferConfig struct {
	// LaunchCutoff is the end of the launch discount window, RFC3339.
	// Before it, the discounted launch offer is returned unconditionally.
	LaunchCutoff string        `yaml:"launchCutoff"`
	Cooldown     time.Duration `yaml:"cooldown"`
}

type GuardConfig struct {
	LockWindow   time.Duration `yaml:"lockWindow"`
	GlobalWindow time.Duration `yaml:"globalWindow"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Storage   StorageConfig `yaml:"storage"`
	Logger    LoggerConfig  `yaml:"logger"`
	Offer     OfferConfig   `yaml:"offer"`
	Guard     GuardConfig   `yaml:"guard"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}
