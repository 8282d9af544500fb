package config

import (
	"time"

	"songvault/pkg/logger"

	"github.com/spf13/viper"
)

const (
	defaultAccessTokenTTLMinutes = 15
	defaultRefreshTokenTTLHours  = 24 * 7
	defaultMediaRoot             = "media"
	defaultMediaURL              = "/media/"
	minJWTSecretLength           = 32
)

type Config struct {
	GeneralVersion        string `mapstructure:"GENERAL_VERSION"`
	Environment           string `mapstructure:"ENVIRONMENT"`
	ServerPort            int    `mapstructure:"SERVER_PORT"`
	DatabaseHost          string `mapstructure:"DB_HOST"`
	DatabasePort          int    `mapstructure:"DB_PORT"`
	DatabaseName          string `mapstructure:"DB_NAME"`
	DatabaseUser          string `mapstructure:"DB_USER"`
	DatabasePassword      string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress  string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort     int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset    int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins      string `mapstructure:"CORS_ALLOW_ORIGINS"`
	JWTSecret             string `mapstructure:"JWT_SECRET"`
	AccessTokenTTLMinutes int    `mapstructure:"ACCESS_TOKEN_TTL_MINUTES"`
	RefreshTokenTTLHours  int    `mapstructure:"REFRESH_TOKEN_TTL_HOURS"`
	MediaRoot             string `mapstructure:"MEDIA_ROOT"`
	MediaURL              string `mapstructure:"MEDIA_URL"`
	SchedulerEnabled      bool   `mapstructure:"SCHEDULER_ENABLED"`
}

var ConfigInstance Config

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
	"CORS_ALLOW_ORIGINS",
	"JWT_SECRET", "ACCESS_TOKEN_TTL_MINUTES", "REFRESH_TOKEN_TTL_HOURS",
	"MEDIA_ROOT", "MEDIA_URL", "SCHEDULER_ENABLED",
}

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	viper.SetDefault("DB_CACHE_RESET", -1)

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	applyDefaults(&config)

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"dbHost", config.DatabaseHost,
	)
	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMinutes) * time.Minute
}

func (c Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLHours) * time.Hour
}

func applyDefaults(config *Config) {
	if config.AccessTokenTTLMinutes <= 0 {
		config.AccessTokenTTLMinutes = defaultAccessTokenTTLMinutes
	}
	if config.RefreshTokenTTLHours <= 0 {
		config.RefreshTokenTTLHours = defaultRefreshTokenTTLHours
	}
	if config.MediaRoot == "" {
		config.MediaRoot = defaultMediaRoot
	}
	if config.MediaURL == "" {
		config.MediaURL = defaultMediaURL
	}
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.JWTSecret == "" {
		return log.ErrMsg("Fatal error: JWT_SECRET is required")
	}

	if !config.IsDevelopment() && len(config.JWTSecret) < minJWTSecretLength {
		return log.Error(
			"Fatal error: JWT_SECRET too short",
			"minLength", minJWTSecretLength,
		)
	}

	ConfigInstance = config
	return nil
}
