package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	LoginSecret string
	MaxLogRows  int
)

// Session tokens are valid for 3 hours; expiry is checked by the
// middleware / loginCheck, not by the codec itself.
const SessionTTLSeconds = 10800

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	LoginSecret = GetEnv("LOGIN_SECRET")
	if LoginSecret == "" {
		log.Println("❌ LOGIN_SECRET is not set!")
	} else {
		log.Println("✅ LOGIN_SECRET loaded.")
	}

	MaxLogRows = GetEnvInt("MAX_LOG_ROWS", 10000)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARN] %s is not a number, using default %d", key, defaultValue)
		return defaultValue
	}
	return n
}
