package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	RedisPass    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB  int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB int    `mapstructure:"REDIS_QUEUE_DB"`

	// Receiving account for VietQR bank transfers.
	BankID          string `mapstructure:"BANK_ID"`
	BankAccountNo   string `mapstructure:"BANK_ACCOUNT_NO"`
	BankAccountName string `mapstructure:"BANK_ACCOUNT_NAME"`
	QRExpiryMinutes int    `mapstructure:"QR_EXPIRY_MINUTES"`

	// Cloudinary media storage.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Firebase service account for FCM pushes.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
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
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "stayease")
	viper.SetDefault("BANK_ID", "970436")
	viper.SetDefault("BANK_ACCOUNT_NO", "")
	viper.SetDefault("BANK_ACCOUNT_NAME", "STAYEASE JSC")
	viper.SetDefault("QR_EXPIRY_MINUTES", 15)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "config/firebase-service-account.json")

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
