package config

import (
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

const (
	DefaultDailyJobLimit        = 6
	DefaultMaxJobPhotos         = 5
	DefaultRebalanceAt          = "01:00"
	DefaultRebalanceHorizonDays = 7
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset   int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`
	RebalanceAt          string `mapstructure:"REBALANCE_AT"`
	RebalanceHorizonDays int    `mapstructure:"REBALANCE_HORIZON_DAYS"`
	DefaultDailyJobLimit int    `mapstructure:"DEFAULT_DAILY_JOB_LIMIT"`
	MaxJobPhotos         int    `mapstructure:"MAX_JOB_PHOTOS"`
	MediaBaseURL         string `mapstructure:"MEDIA_BASE_URL"`
	MediaAPIKey          string `mapstructure:"MEDIA_API_KEY"`
}

var ConfigInstance Config

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
		"CORS_ALLOW_ORIGINS", "JWT_SECRET",
		"SCHEDULER_ENABLED", "REBALANCE_AT", "REBALANCE_HORIZON_DAYS",
		"DEFAULT_DAILY_JOB_LIMIT", "MAX_JOB_PHOTOS",
		"MEDIA_BASE_URL", "MEDIA_API_KEY",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	viper.SetDefault("DB_CACHE_RESET", -1)
	viper.SetDefault("REBALANCE_AT", DefaultRebalanceAt)
	viper.SetDefault("REBALANCE_HORIZON_DAYS", DefaultRebalanceHorizonDays)
	viper.SetDefault("DEFAULT_DAILY_JOB_LIMIT", DefaultDailyJobLimit)
	viper.SetDefault("MAX_JOB_PHOTOS", DefaultMaxJobPhotos)

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

	log.Info("Successfully initialized config", "environment", config.Environment, "port", config.ServerPort)
	if err := Validate(config); err != nil {
		return Config{}, err
	}

	ConfigInstance = config
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

// Validate rejects configurations the scheduler cannot run with.
func Validate(config Config) error {
	log := logger.New("config").Function("Validate")

	if config.ServerPort <= 0 {
		return log.Error("Fatal error: invalid server port", "port", config.ServerPort)
	}

	if config.JWTSecret == "" {
		return log.ErrMsg("Fatal error: JWT_SECRET is required")
	}

	if config.DefaultDailyJobLimit <= 0 {
		return log.Error(
			"Fatal error: DEFAULT_DAILY_JOB_LIMIT must be positive",
			"limit", config.DefaultDailyJobLimit,
		)
	}

	if config.MaxJobPhotos <= 0 {
		return log.Error("Fatal error: MAX_JOB_PHOTOS must be positive", "max", config.MaxJobPhotos)
	}

	if config.RebalanceHorizonDays < 0 {
		return log.Error(
			"Fatal error: REBALANCE_HORIZON_DAYS cannot be negative",
			"days", config.RebalanceHorizonDays,
		)
	}

	if config.SchedulerEnabled {
		if _, err := time.Parse("15:04", config.RebalanceAt); err != nil {
			return log.Err("Fatal error: REBALANCE_AT must be HH:MM", err, "value", config.RebalanceAt)
		}
	}

	return nil
}
