package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server           Server
	Database         Database
	Runner           Runner
	GeminiApiKey     string
	GeminiModel      string
	FeedbackLanguage string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Runner struct {
	PollInterval time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("FEEDBACK_LANGUAGE", "Dutch")
	viper.SetDefault("RUNNER_POLL_INTERVAL_SECONDS", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.GeminiModel = viper.GetString("GEMINI_MODEL")
	config.FeedbackLanguage = viper.GetString("FEEDBACK_LANGUAGE")
	config.Runner.PollInterval = time.Duration(viper.GetInt("RUNNER_POLL_INTERVAL_SECONDS")) * time.Second

	log.Info().Str("serverPort", config.Server.Port).Str("dbHost", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
