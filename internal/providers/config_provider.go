package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"watchlist/internal/structures"

	"github.com/spf13/viper"
)

const DefaultStorageKey = "watchlist_portal_v2"

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.key", DefaultStorageKey)
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("persistence.backupInterval", time.Hour)
	v.SetDefault("remote.timeout", 10*time.Second)
	v.SetDefault("remote.tokenFile", "./data/access_token")
	v.SetDefault("auth.tokenTTL", 30*24*time.Hour)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("metrics.refreshInterval", 30*time.Second)
	v.SetDefault("rateLimit.loginRps", 1.0)
	v.SetDefault("rateLimit.loginBurst", 5)
}

// NewConfigProvider reads the YAML file named by flags (when set), applies
// environment overrides and validates the result.
func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	_ = v.BindEnv("logger.level", "WATCHLIST_LOG_LEVEL")
	_ = v.BindEnv("storage.driver", "WATCHLIST_STORAGE_DRIVER")
	_ = v.BindEnv("storage.redisUrl", "WATCHLIST_REDIS_URL")
	_ = v.BindEnv("remote.baseUrl", "WATCHLIST_API_BASE_URL")
	_ = v.BindEnv("remote.tokenFile", "WATCHLIST_TOKEN_FILE")
	_ = v.BindEnv("auth.secret", "WATCHLIST_AUTH_SECRET")
	_ = v.BindEnv("cache.enabled", "WATCHLIST_CACHE_ENABLED")

	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	if err := cnfValidator.Validate(); err != nil {
		return nil, err
	}

	conf.AppName = "WatchlistDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
