package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort           string
	DatabaseURL          string
	SessionSecret        string
	GoogleClientID       string
	GoogleClientSecret   string
	GoogleCallbackURL    string
	AllowedOrigins       []string
	UploadDir            string
	WebDir               string
	SpreadsheetPath      string
	DriveCredentialsFile string
	CodePoolSize         int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using environment")
	}

	return &Config{
		ServerPort:           getEnv("PORT", "3000"),
		DatabaseURL:          getEnv("DATABASE_URL", "host=localhost port=5432 user=postgres password=postgres dbname=anaadyanta sslmode=disable"),
		SessionSecret:        getEnv("SESSION_SECRET", "your-secret-key"),
		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL:    getEnv("GOOGLE_CALLBACK_URL", "http://localhost:3000/auth/google/callback"),
		AllowedOrigins:       splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5500,http://127.0.0.1:5500,https://aanadyanta.in.net")),
		UploadDir:            getEnv("UPLOAD_DIR", "uploads"),
		WebDir:               getEnv("WEB_DIR", "web"),
		SpreadsheetPath:      getEnv("SPREADSHEET_PATH", "backend/submissions.xlsx"),
		DriveCredentialsFile: getEnv("DRIVE_CREDENTIALS_FILE", "credentials.json"),
		CodePoolSize:         10000,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
