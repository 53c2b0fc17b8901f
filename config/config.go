package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var SecretKey []byte

func Init() {
	// .env is optional outside local development
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		logrus.Fatal("JWT secret key not set")
	}
	SecretKey = []byte(secret)
}

// Port returns the HTTP listen address.
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return ":" + p
	}
	return ":8080"
}

// DatabaseURL returns the Postgres connection string.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// BillArchiveDir is where terminal bills are saved; empty disables archiving.
func BillArchiveDir() string {
	return os.Getenv("BILL_ARCHIVE_DIR")
}

// Admin seed credentials, overridable for non-default deployments.
func AdminSeed() (name, email, password, phone string) {
	name = getenvDefault("ADMIN_NAME", "Admin User")
	email = getenvDefault("ADMIN_EMAIL", "admin@example.com")
	password = getenvDefault("ADMIN_PASSWORD", "admin123")
	phone = getenvDefault("ADMIN_PHONE", "123-456-7890")
	return
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
