package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/videoflix/videoflix/internal/catalog"
	"github.com/videoflix/videoflix/internal/storage"
)

type Config struct {
	Port           string
	MediaRoot      string
	HLSRoot        string
	PublicBaseURL  string
	MigrationsPath string
	DB             catalog.Config
	S3             storage.S3Config
}

// Load reads configuration from the environment, with a .env file as the
// development-time source. Every key has a workable default except the S3
// credentials, which stay empty when the deployment has no bucket-hosted
// variants.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		MediaRoot:      getEnv("MEDIA_ROOT", "./media"),
		HLSRoot:        getEnv("HLS_ROOT", "./media/hls"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		S3: storage.S3Config{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
	}

	cfg.DB.Type = getEnv("DB_TYPE", "sqlite")
	if cfg.DB.Type == "postgres" {
		cfg.DB.Host = getEnv("DB_HOST", "localhost")
		cfg.DB.Port = getEnvInt("DB_PORT", 5432)
		cfg.DB.User = getEnv("DB_USER", "videoflix")
		cfg.DB.Password = getEnv("DB_PASSWORD", "videoflix_dev")
		cfg.DB.Name = getEnv("DB_NAME", "videoflix")
	} else {
		cfg.DB.SQLitePath = getEnv("DB_PATH", "./videoflix.db")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
