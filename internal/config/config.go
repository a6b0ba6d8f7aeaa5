package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	GitHub   GitHubConfig
	Asset    AssetConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Manifest ManifestConfig
	Metrics  MetricsConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	BasePath        string
	StaticDir       string
	ShutdownTimeout time.Duration
}

type GitHubConfig struct {
	APIURL      string
	Token       string
	Owner       string
	Repo        string
	Workflow    string
	RunsPerPage int
	Timeout     time.Duration
}

type AssetConfig struct {
	UnzipURL        string
	Timeout         time.Duration
	MaxArchiveBytes int64
}

type CacheConfig struct {
	Enabled    bool
	TTL        time.Duration
	MaxEntries int
	MaxBytes   int64
}

type CORSConfig struct {
	MaxAge time.Duration
}

type ManifestConfig struct {
	ProductName string
}

type MetricsConfig struct {
	Enabled bool
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_BASE_PATH", "/artifacts")
	v.SetDefault("SERVER_STATIC_DIR", "")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("GITHUB_API_URL", "https://api.github.com")
	v.SetDefault("GITHUB_TOKEN", "")
	v.SetDefault("GITHUB_OWNER", "ESPresense")
	v.SetDefault("GITHUB_REPO", "ESPresense")
	v.SetDefault("GITHUB_WORKFLOW", "build.yml")
	v.SetDefault("GITHUB_RUNS_PER_PAGE", 10)
	v.SetDefault("UNZIP_URL", "https://nightly.link")
	v.SetDefault("UPSTREAM_TIMEOUT", "30s")
	v.SetDefault("ASSET_MAX_ARCHIVE_BYTES", 64<<20)
	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("CACHE_TTL", "15m")
	v.SetDefault("CACHE_MAX_ENTRIES", 1024)
	v.SetDefault("CACHE_MAX_BYTES", 128<<20)
	v.SetDefault("CORS_MAX_AGE", "24h")
	v.SetDefault("MANIFEST_PRODUCT_NAME", "ESPresense")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	upstreamTimeout := parseDuration(v, "UPSTREAM_TIMEOUT", 30*time.Second)

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			BasePath:        strings.TrimSuffix(v.GetString("SERVER_BASE_PATH"), "/"),
			StaticDir:       v.GetString("SERVER_STATIC_DIR"),
			ShutdownTimeout: parseDuration(v, "SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		GitHub: GitHubConfig{
			APIURL:      strings.TrimSuffix(v.GetString("GITHUB_API_URL"), "/"),
			Token:       v.GetString("GITHUB_TOKEN"),
			Owner:       v.GetString("GITHUB_OWNER"),
			Repo:        v.GetString("GITHUB_REPO"),
			Workflow:    v.GetString("GITHUB_WORKFLOW"),
			RunsPerPage: v.GetInt("GITHUB_RUNS_PER_PAGE"),
			Timeout:     upstreamTimeout,
		},
		Asset: AssetConfig{
			UnzipURL:        strings.TrimSuffix(v.GetString("UNZIP_URL"), "/"),
			Timeout:         upstreamTimeout,
			MaxArchiveBytes: v.GetInt64("ASSET_MAX_ARCHIVE_BYTES"),
		},
		Cache: CacheConfig{
			Enabled:    v.GetBool("CACHE_ENABLED"),
			TTL:        parseDuration(v, "CACHE_TTL", 15*time.Minute),
			MaxEntries: v.GetInt("CACHE_MAX_ENTRIES"),
			MaxBytes:   v.GetInt64("CACHE_MAX_BYTES"),
		},
		CORS: CORSConfig{
			MaxAge: parseDuration(v, "CORS_MAX_AGE", 24*time.Hour),
		},
		Manifest: ManifestConfig{
			ProductName: v.GetString("MANIFEST_PRODUCT_NAME"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("SERVER_PORT must be between 1 and 65535")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return errors.New("SERVER_BASE_PATH must start with /")
	}
	if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
		return errors.New("GITHUB_OWNER and GITHUB_REPO are required")
	}
	if c.GitHub.Workflow == "" {
		return errors.New("GITHUB_WORKFLOW is required")
	}
	if c.Cache.Enabled && c.Cache.MaxEntries <= 0 {
		return errors.New("CACHE_MAX_ENTRIES must be positive when caching is enabled")
	}
	if c.Cache.Enabled && c.Cache.MaxBytes <= 0 {
		return errors.New("CACHE_MAX_BYTES must be positive when caching is enabled")
	}
	return nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
