package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Payment  Payment
	Sweep    Sweep
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

// Payment holds the gateway credentials and the shared secret used to
// authenticate inbound webhook notifications.
type Payment struct {
	ServerKey    string
	Production   bool
	WebhookToken string
}

// Sweep configures the background job that finalizes expired quiz sessions.
type Sweep struct {
	Enabled bool
	Spec    string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SWEEP_ENABLED", true)
	viper.SetDefault("SWEEP_SPEC", "@every 1m")

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

	config.Payment.ServerKey = viper.GetString("MIDTRANS_SERVER_KEY")
	config.Payment.Production = viper.GetBool("MIDTRANS_PRODUCTION")
	config.Payment.WebhookToken = viper.GetString("PAYMENT_WEBHOOK_TOKEN")

	config.Sweep.Enabled = viper.GetBool("SWEEP_ENABLED")
	config.Sweep.Spec = viper.GetString("SWEEP_SPEC")

	log.Info().Str("port", config.Server.Port).Str("db", config.Database.Name).Msg("Config loaded")
	return &config, nil
}
