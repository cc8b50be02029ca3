package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Env        string           `mapstructure:"env"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	S3         S3Config         `mapstructure:"s3"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Email      EmailConfig      `mapstructure:"email"`
	AI         AIConfig         `mapstructure:"ai"`
	ExerciseDB ExerciseDBConfig `mapstructure:"exercisedb"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres"; DSN is the driver-specific source
	// string (a file path for sqlite).
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	// Expiration accepts duration strings ("60m", "24h") from the config file.
	Expiration time.Duration `mapstructure:"expiration"`
}

type EmailConfig struct {
	APIKey      string `mapstructure:"api_key"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// AIConfig points at an OpenAI-compatible chat-completions endpoint.
type AIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// ExerciseDBConfig configures the RapidAPI exercise database used to seed the
// local exercise library.
type ExerciseDBConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Host    string `mapstructure:"host"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

// IsDev reports whether the app runs in development mode. Side-effecting
// integrations (email, Sentry) degrade to logging when it is true.
func (c Config) IsDev() bool {
	return c.Env != "production"
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	// Set the path to look for the config file in
	viper.AddConfigPath(path)
	// Set the name of the config file (without extension)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// --- Environment Variable Handling ---
	viper.AutomaticEnv()
	// Use replacer for nested keys e.g., server.address -> SERVER_ADDRESS
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// --- Set default values ---
	viper.SetDefault("env", "development")
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "data/trainer.db")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("email.from_address", "onboarding@resend.dev")
	viper.SetDefault("email.from_name", "SmartGains")
	viper.SetDefault("ai.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("ai.model", "llama-3.3-70b-versatile")
	viper.SetDefault("exercisedb.base_url", "https://exercisedb.p.rapidapi.com")
	viper.SetDefault("exercisedb.host", "exercisedb.p.rapidapi.com")

	// --- Read Config File ---
	err = viper.ReadInConfig()
	// If config file not found, continue; env vars and defaults still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	// --- Unmarshal Config ---
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
