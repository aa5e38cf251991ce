package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SecurityConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
}

type GeneratorConfig struct {
	APIKey   string
	Endpoint string
	Model    string
	Timeout  time.Duration
}

type QuotaConfig struct {
	FreeLimit    int
	PremiumLimit int
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Security         SecurityConfig
	Generator        GeneratorConfig
	Quota            QuotaConfig
	AllowCORSOrigins []string
}

// Load reads config.yaml (if present) and SIMULADO_* environment variables.
// The signing secret and the provider credential are required; without them
// the process must not start.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("SIMULADO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *AppConfig) validate() error {
	if c.Security.JWTSecret == "" {
		return errors.New("security.jwtsecret is required")
	}
	if c.Generator.APIKey == "" {
		return errors.New("generator.apikey is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "90s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.dsn", "postgres://localhost:5432/simulado")
	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("security.jwtsecret", "")
	v.SetDefault("security.jwtttl", "30m")

	v.SetDefault("generator.apikey", "")
	v.SetDefault("generator.endpoint", "https://generativelanguage.googleapis.com")
	v.SetDefault("generator.model", "gemini-2.5-pro")
	v.SetDefault("generator.timeout", "60s")

	v.SetDefault("quota.freelimit", 5)
	v.SetDefault("quota.premiumlimit", 10)
}
