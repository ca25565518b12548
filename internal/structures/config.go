package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Driver     string `yaml:"driver" validate:"required|in:file,sqlite,redis,memory"`
	Key        string `yaml:"key"`
	Dir        string `yaml:"dir"`
	SqlitePath string `yaml:"sqlitePath"`
	RedisURL   string `yaml:"redisUrl"`
}

type Persistence struct {
	BackupPath     string        `yaml:"backupPath" validate:"unixPath"`
	BackupInterval time.Duration `yaml:"backupInterval"`
}

type RemoteConfig struct {
	BaseURL   string        `yaml:"baseUrl"`
	TokenFile string        `yaml:"tokenFile"`
	Timeout   time.Duration `yaml:"timeout"`
}

type AuthConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Secret       string        `yaml:"secret"`
	TokenTTL     time.Duration `yaml:"tokenTTL"`
	PasswordHash string        `yaml:"passwordHash"`
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
	Enabled         bool          `yaml:"enabled"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`
}

type CorsConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type RateLimitConfig struct {
	LoginRPS   float64 `yaml:"loginRps"`
	LoginBurst int     `yaml:"loginBurst"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server          `yaml:"webServer"`
	Storage     StorageConfig   `yaml:"storage"`
	Persistence Persistence     `yaml:"persistence"`
	Remote      RemoteConfig    `yaml:"remote"`
	Auth        AuthConfig      `yaml:"auth"`
	Logger      LoggerConfig    `yaml:"logger"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
	Cors        CorsConfig      `yaml:"cors"`
	RateLimit   RateLimitConfig `yaml:"rateLimit"`
}
