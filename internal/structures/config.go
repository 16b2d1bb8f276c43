package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type CatalogConfig struct {
	BaseURL string        `yaml:"baseUrl" mapstructure:"baseUrl" validate:"required|fullUrl"`
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
}

type StoreConfig struct {
	FilePath string `yaml:"filePath" mapstructure:"filePath" validate:"required"`
	Compress bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer" mapstructure:"webServer"`
	Catalog   CatalogConfig `yaml:"catalog"`
	Store     StoreConfig   `yaml:"store"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
