package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	DBPath               string
	Production           bool
	DefaultAdminUsername string
	DefaultAdminPassword string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No se ha encontrado un archivo .env, se usan las variables de entorno")
	}

	return Config{
		Port:                 getEnv("PORT", "3000"),
		DBPath:               getEnv("DB_PATH", "db/database.db"),
		Production:           getEnv("PRODUCTION", "false") == "true",
		DefaultAdminUsername: getEnv("DEFAULT_ADMIN_USERNAME", "admin"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin"),
	}
}

// getEnv obtiene una variable de entorno o usa un valor por defecto

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
