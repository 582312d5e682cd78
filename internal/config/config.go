package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	JWT     JWTConfig
	Redis   RedisConfig
	SMTP    SMTPConfig
	Logging LoggingConfig
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri" validate:"required"`
	Database string `mapstructure:"database" validate:"required"`
}

type JWTConfig struct {
	Secret        string `mapstructure:"secret" validate:"required"`
	ExpiryMinutes int    `mapstructure:"expiry_minutes" validate:"gt=0"`
}

type RedisConfig struct {
	// URL is optional: when empty the ledger falls back to
	// in-process locking.
	URL string `mapstructure:"url"`
}

type SMTPConfig struct {
	// Host is optional: when empty booking confirmations are not sent.
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("jwt.expiry_minutes", 60)
	viper.SetDefault("mongo.database", "doctors_portal")
	viper.SetDefault("logging.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Mongo.URI == "" {
		config.Mongo.URI = viper.GetString("MONGO_URI")
	}
	if config.JWT.Secret == "" {
		config.JWT.Secret = viper.GetString("ACCESS_TOKEN_SECRET")
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
