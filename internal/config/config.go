package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"local"`
	DB         `yaml:"db"`
	HTTPServer `yaml:"http_server"`
	Auth       `yaml:"auth"`
	RateLimit  `yaml:"rate_limit"`
	CORS       `yaml:"cors"`
}

type DB struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"blog.db"`
}

type HTTPServer struct {
	Address      string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"10s"`
}

type Auth struct {
	AccessSecret string        `yaml:"access_secret" env:"JWT_SECRET_KEY" env-required:"true"`
	AccessTTL    time.Duration `yaml:"access_ttl" env:"ACCESS_TOKEN_TTL" env-default:"30m"`
	ResetSecret  string        `yaml:"reset_secret" env:"RESET_SECRET_KEY" env-required:"true"`
	ResetTTL     time.Duration `yaml:"reset_ttl" env:"RESET_TOKEN_TTL" env-default:"15m"`
	BcryptCost   int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"12"`
}

type RateLimit struct {
	Enabled  bool          `yaml:"enabled" env:"RATE_LIMIT_ENABLED" env-default:"true"`
	Rate     int           `yaml:"rate" env-default:"60"`
	Burst    int           `yaml:"burst" env-default:"120"`
	Interval time.Duration `yaml:"interval" env-default:"1m"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// MustLoad reads the config from configPath, or from environment
// variables alone when configPath is empty. Panics on failure so the
// process never starts half-configured.
func MustLoad(configPath string) *Config {
	config, err := load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	return config
}

func load(path string) (*Config, error) {
	var config Config

	if path == "" {
		if err := cleanenv.ReadEnv(&config); err != nil {
			return nil, err
		}
		return &config, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if err := cleanenv.ReadConfig(path, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
