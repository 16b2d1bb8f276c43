package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cookingapp/internal/structures"

	"github.com/spf13/viper"
)

const (
	DefaultCatalogPath    = "dev/nosh-assignment"
	DefaultCatalogTimeout = 10 * time.Second
	DefaultCacheTTL       = 30 * time.Second
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("catalog.path", DefaultCatalogPath)
	v.SetDefault("catalog.timeout", DefaultCatalogTimeout)
	v.SetDefault("cache.ttl", DefaultCacheTTL)

	v.BindEnv("logger.level", "COOKINGAPP_LOG_LEVEL")
	v.BindEnv("catalog.baseUrl", "COOKINGAPP_CATALOG_URL")
	v.BindEnv("store.filePath", "COOKINGAPP_STORE_PATH")
	v.BindEnv("cache.enabled", "COOKINGAPP_CACHE_ENABLED")
	v.BindEnv("cache.size", "COOKINGAPP_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(flags.ConfigPath)
	conf.Store.FilePath = resolvePath(base, conf.Store.FilePath)
	conf.Logger.Dir = resolvePath(base, conf.Logger.Dir)

	conf.AppName = "CookingApp"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// resolvePath anchors relative paths at the directory holding the config file.
func resolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	abs, err := filepath.Abs(filepath.Join(base, path))
	if err != nil {
		return filepath.Join(base, path)
	}
	return abs
}
