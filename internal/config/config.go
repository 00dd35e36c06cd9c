package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	APIKey      string `mapstructure:"news_api_key"`
	BaseURL     string `mapstructure:"news_api_base_url"`
	Country     string `mapstructure:"news_country"`
	PageSize    int    `mapstructure:"page_size"`
	ProfileFile string `mapstructure:"profile_file"`

	RequestTimeoutSeconds int64         `mapstructure:"request_timeout"`
	ImageTimeoutSeconds   int64         `mapstructure:"image_timeout"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	ImageTimeout          time.Duration `mapstructure:"-"`
	PreloadImages         bool          `mapstructure:"preload_images"`
}

// String hides the API key when the config is logged.
func (c Config) String() string {
	key := ""
	if c.APIKey != "" {
		key = "****"
	}
	return fmt.Sprintf("{app=%s env=%s base_url=%s country=%s page_size=%d api_key=%s preload_images=%t}",
		c.AppName, c.Env, c.BaseURL, c.Country, c.PageSize, key, c.PreloadImages)
}

// New returns a viper instance with defaults and environment binding applied.
// Callers may bind flags onto it before passing it to Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("app_name", "samvad-headlines")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("news_api_key", "")
	v.SetDefault("news_api_base_url", "https://newsapi.org/v2")
	v.SetDefault("news_country", "us")
	v.SetDefault("page_size", 16)
	v.SetDefault("profile_file", "")
	v.SetDefault("request_timeout", 15) // seconds
	v.SetDefault("image_timeout", 20)   // seconds
	v.SetDefault("preload_images", true)

	v.AutomaticEnv()
	return v
}

// Load reads configuration from environment variables and config files.
// An empty configFile skips the file step.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	if v == nil {
		v = New()
	}
	if path := strings.TrimSpace(configFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("news_api_key is required")
	}
	if cfg.PageSize <= 0 || cfg.PageSize > 100 {
		return nil, fmt.Errorf("invalid page_size (must be between 1 and 100)")
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout (must be positive seconds)")
	}
	if cfg.ImageTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid image_timeout (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	cfg.ImageTimeout = time.Duration(cfg.ImageTimeoutSeconds) * time.Second

	return &cfg, nil
}
