package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	FirebaseProject string
	FirebaseApiKey  string
	StorageBucket   string

	// "firestore" for the real backend, "local" for the file-backed demo mode.
	StorageBackend  string
	LocalDataPath   string
	LocalAuthSecret string

	StripeSecretKey      string
	StripePublishableKey string
	PlatformFeeRate      float64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:  getEnv("FIREBASE_API_KEY", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),

		StorageBackend:  getEnv("STORAGE_BACKEND", "firestore"),
		LocalDataPath:   getEnv("LOCAL_DATA_PATH", "./sponsorconnect-local.json"),
		LocalAuthSecret: getEnv("LOCAL_AUTH_SECRET", "sponsorconnect-demo-secret"),

		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		PlatformFeeRate:      getEnvAsFloat("PLATFORM_FEE_RATE", 0.05),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return floatValue
		}
	}
	return defaultValue
}
