package config

import (
	"time"

	"github.com/weiawesome/momentroom/internal/media"
	pkgconfig "github.com/weiawesome/momentroom/pkg/config"
)

type Config struct {
	API   APIConfig
	Cache CacheConfig
	Media MediaConfig
	Log   LogConfig
}

type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	AccessToken string        `mapstructure:"access_token"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
	Redis  RedisConfig   `mapstructure:"redis"`
}

type MediaConfig struct {
	Local media.LocalConfig `mapstructure:"local"`
	S3    media.S3Config    `mapstructure:"s3"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads ./config/config.yaml (if any), a .env file (if any) and the
// environment, in increasing priority.
func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.access_token", "")
	v.SetDefault("cache.prefix", "momentroom")
	v.SetDefault("cache.ttl", "0s")
	v.SetDefault("cache.redis.enabled", false)
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("media.local.base_path", ".")
	v.SetDefault("media.s3.region", "us-east-1")
	v.SetDefault("media.s3.use_path_style", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.pretty", true)

	// Bind environment variables
	v.BindEnv("api.base_url", "MOMENTROOM_API_URL")
	v.BindEnv("api.access_token", "MOMENTROOM_TOKEN")
	v.BindEnv("cache.redis.enabled", "REDIS_ENABLED")
	v.BindEnv("cache.redis.address", "REDIS_ADDRESS")
	v.BindEnv("cache.redis.password", "REDIS_PASSWORD")
	v.BindEnv("media.s3.endpoint", "S3_ENDPOINT")
	v.BindEnv("media.s3.bucket", "S3_BUCKET")
	v.BindEnv("media.s3.access_key_id", "S3_ACCESS_KEY_ID")
	v.BindEnv("media.s3.secret_access_key", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
