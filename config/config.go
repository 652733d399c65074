package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisPaymentDB int    `mapstructure:"REDIS_PAYMENT_DB"`
	RedisSweepDB   int    `mapstructure:"REDIS_SWEEP_DB"`

	// Stripe embedded checkout for deposit-taking tenants.
	StripeKey         string `mapstructure:"STRIPE_KEY"`
	CheckoutReturnURL string `mapstructure:"CHECKOUT_RETURN_URL"`
	PaymentHoldMins   int    `mapstructure:"PAYMENT_HOLD_MINS"`

	// Defaults applied to tenants that have not configured booking yet.
	DefaultTimezone      string `mapstructure:"DEFAULT_TIMEZONE"`
	DefaultSlotMinutes   int    `mapstructure:"DEFAULT_SLOT_MINUTES"`
	DefaultLookaheadDays int    `mapstructure:"DEFAULT_LOOKAHEAD_DAYS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_PAYMENT_DB", 1)
	viper.SetDefault("REDIS_SWEEP_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("CHECKOUT_RETURN_URL", "https://app.sitekit.dev/booking/return")
	viper.SetDefault("PAYMENT_HOLD_MINS", 30)
	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("DEFAULT_SLOT_MINUTES", 30)
	viper.SetDefault("DEFAULT_LOOKAHEAD_DAYS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
