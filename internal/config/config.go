package config

import (
	"log"
	"os"
	"strings"
)

type Config struct {
	Port           string
	DBDSN          string
	LogFile        string
	CORSOrigins    string
	DefaultCountry string
	SMTPAddr       string
	SMTPFrom       string
	SMTPUser       string
	SMTPPass       string
}

func Load() Config {
	cfg := Config{
		Port:           getenv("PORT", "4000"),
		DBDSN:          getenv("DB_DSN", "cellardoor.db"), // sqlite file in project root
		LogFile:        getenv("LOG_FILE", "./cellardoor.log"),
		CORSOrigins:    getenv("CORS_ORIGINS", "http://localhost:4001,http://localhost:4002,http://localhost:4200"),
		DefaultCountry: getenv("DEFAULT_COUNTRY", "Vietnam"),
		SMTPAddr:       getenv("SMTP_ADDR", ""),
		SMTPFrom:       getenv("SMTP_FROM", "no-reply@cellardoor.test"),
		SMTPUser:       getenv("SMTP_USER", ""),
		SMTPPass:       getenv("SMTP_PASS", ""),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s CORS_ORIGINS=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.CORSOrigins)
	return cfg
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
