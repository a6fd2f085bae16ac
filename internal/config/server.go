package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig drives cmd/api. Sources, highest priority first:
// FREIGHT_* environment variables (a .env file is loaded if present),
// the server config file, then defaults.
type ServerConfig struct {
	Port        string        `mapstructure:"port" validate:"required,numeric"`
	Env         string        `mapstructure:"env" validate:"required,oneof=development production test"`
	ConfigPath  string        `mapstructure:"config_path"`
	CORSOrigins []string      `mapstructure:"cors_origins"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl" validate:"gt=0"`
	StaticDir   string        `mapstructure:"static_dir"`
}

func (s *ServerConfig) IsProduction() bool { return s.Env == "production" }

// LoadServerConfig reads the server settings. configFile may be empty, in
// which case ./server.yaml and ./configs/server.yaml are tried.
func LoadServerConfig(configFile string) (*ServerConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	if configFile != "" {
		// An explicit file must exist; only the search path is optional.
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("failed to read server config: %w", err)
		}
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("server")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("FREIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("config_path", "")
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("cache_ttl", "1h")
	v.SetDefault("static_dir", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read server config: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server config: %w", err)
	}
	// Env values arrive as a single comma-separated string.
	cfg.CORSOrigins = splitOrigins(cfg.CORSOrigins)

	if err := validateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	return &cfg, nil
}

func splitOrigins(in []string) []string {
	out := []string{}
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
