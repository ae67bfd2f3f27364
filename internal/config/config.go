package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port          int
	JWTSecret     string
	DatabaseURL   string
	CORSOrigins   []string
	AdminEmail    string
	AdminPassword string

	// Payment provider
	PaymentAPIURL        string
	PaymentAPIKey        string
	PaymentWebhookSecret string

	// Survey page fetching
	FetchProxies []string
	FetchTimeout time.Duration

	// Spreadsheet mirror (optional)
	SheetAPIURL string
	SheetAPIKey string

	// SMTP notifications (optional)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	port, _ := strconv.Atoi(getEnv("PORT", "4002"))

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	origins := splitTrimmed(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"))

	fetchTimeout, err := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "12"))
	if err != nil || fetchTimeout <= 0 {
		return nil, fmt.Errorf("FETCH_TIMEOUT_SECONDS must be a positive integer")
	}

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	return &Config{
		Port:          port,
		JWTSecret:     jwtSecret,
		DatabaseURL:   dbURL,
		CORSOrigins:   origins,
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@surveypay.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		PaymentAPIURL:        getEnv("PAYMENT_API_URL", ""),
		PaymentAPIKey:        getEnv("PAYMENT_API_KEY", ""),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),

		FetchProxies: splitTrimmed(getEnv("FETCH_PROXIES",
			"https://api.allorigins.win/raw?url=%s,https://corsproxy.io/?%s")),
		FetchTimeout: time.Duration(fetchTimeout) * time.Second,

		SheetAPIURL: getEnv("SHEET_API_URL", ""),
		SheetAPIKey: getEnv("SHEET_API_KEY", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "SurveyPay <no-reply@surveypay.local>"),
	}, nil
}

func splitTrimmed(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
