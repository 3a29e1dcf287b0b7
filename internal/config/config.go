package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/voterbowl/backend/pkg/agcod"
	"github.com/voterbowl/backend/pkg/mailer"
)

type AppConfig struct {
	API      *APIConfig    `mapstructure:"api"`
	Gin      *GinConfig    `mapstructure:"gin"`
	Postgres *PGConfig     `mapstructure:"postgres"`
	AGCOD    agcod.Config  `mapstructure:"agcod"`
	Email    mailer.Config `mapstructure:"email"`
}

type APIConfig struct {
	Environment string `mapstructure:"environment"`
	Port        string `mapstructure:"port"`

	// BaseURL is the public origin used when building absolute links in
	// outgoing email.
	BaseURL string `mapstructure:"base_url"`

	AllowedCORSDomains string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PGConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
}

// Load reads the YAML config at path. Any key can be overridden with an
// environment variable, e.g. POSTGRES_PASSWORD overrides postgres.password.
func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	var conf AppConfig
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	return &conf, nil
}
