package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	PORT         string
	GIN_MODE     string
	CORS_ORIGINS []string
	LOG_LEVEL    string

	DB_URL     string
	JWT_SECRET string

	ACCESS_TOKEN_TTL       time.Duration
	REFRESH_TOKEN_TTL      time.Duration
	VERIFICATION_TOKEN_TTL time.Duration
	UNVERIFIED_ACCOUNT_TTL time.Duration

	AWS_ACCESS_KEY_ID     string
	AWS_SECRET_ACCESS_KEY string
	AWS_REGION            string
	S3_BUCKET             string
	S3_ENDPOINT           string
	S3_USE_SSL            bool
	CLOUDFRONT_DOMAIN     string

	RESEND_API_KEY string
	MAIL_FROM      string
	SMTP_HOST      string
	SMTP_PORT      string
	SMTP_USER      string
	SMTP_PASSWORD  string

	FRONTEND_URL string
	BACKEND_URL  string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	SENTRY_DSN string
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("ACCESS_TOKEN_TTL", "30m")
	v.SetDefault("REFRESH_TOKEN_TTL", "168h")
	v.SetDefault("VERIFICATION_TOKEN_TTL", "24h")
	v.SetDefault("UNVERIFIED_ACCOUNT_TTL", "24h")

	v.SetDefault("AWS_REGION", "ap-southeast-2")
	v.SetDefault("S3_BUCKET", "artive-uploads")
	v.SetDefault("S3_USE_SSL", true)

	v.SetDefault("MAIL_FROM", "Gallery <noreply@gallery.local>")
	v.SetDefault("SMTP_PORT", "587")

	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("BACKEND_URL", "http://localhost:8000")
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	PORT = v.GetString("PORT")
	GIN_MODE = v.GetString("GIN_MODE")
	CORS_ORIGINS = splitList(v.GetString("CORS_ORIGINS"))
	LOG_LEVEL = v.GetString("LOG_LEVEL")

	DB_URL = mustEnv(v, "DB_URL")
	JWT_SECRET = mustEnv(v, "JWT_SECRET")

	ACCESS_TOKEN_TTL = v.GetDuration("ACCESS_TOKEN_TTL")
	REFRESH_TOKEN_TTL = v.GetDuration("REFRESH_TOKEN_TTL")
	VERIFICATION_TOKEN_TTL = v.GetDuration("VERIFICATION_TOKEN_TTL")
	UNVERIFIED_ACCOUNT_TTL = v.GetDuration("UNVERIFIED_ACCOUNT_TTL")

	AWS_ACCESS_KEY_ID = v.GetString("AWS_ACCESS_KEY_ID")
	AWS_SECRET_ACCESS_KEY = v.GetString("AWS_SECRET_ACCESS_KEY")
	AWS_REGION = v.GetString("AWS_REGION")
	S3_BUCKET = v.GetString("S3_BUCKET")
	S3_ENDPOINT = v.GetString("S3_ENDPOINT")
	S3_USE_SSL = v.GetBool("S3_USE_SSL")
	CLOUDFRONT_DOMAIN = strings.TrimSuffix(v.GetString("CLOUDFRONT_DOMAIN"), "/")

	RESEND_API_KEY = v.GetString("RESEND_API_KEY")
	MAIL_FROM = v.GetString("MAIL_FROM")
	SMTP_HOST = v.GetString("SMTP_HOST")
	SMTP_PORT = v.GetString("SMTP_PORT")
	SMTP_USER = v.GetString("SMTP_USER")
	SMTP_PASSWORD = v.GetString("SMTP_PASSWORD")

	FRONTEND_URL = strings.TrimSuffix(v.GetString("FRONTEND_URL"), "/")
	BACKEND_URL = strings.TrimSuffix(v.GetString("BACKEND_URL"), "/")

	// Google sign-in is optional; the routes are only mounted when a client id is set.
	GOOGLE_CLIENT_ID = v.GetString("GOOGLE_CLIENT_ID")
	GOOGLE_CLIENT_SECRET = v.GetString("GOOGLE_CLIENT_SECRET")
	GOOGLE_REDIRECT_URL = v.GetString("GOOGLE_REDIRECT_URL")
	GOOGLE_FRONTEND_REDIRECT = v.GetString("GOOGLE_FRONTEND_REDIRECT")

	SENTRY_DSN = v.GetString("SENTRY_DSN")
}

func GoogleEnabled() bool {
	return GOOGLE_CLIENT_ID != "" && GOOGLE_CLIENT_SECRET != "" && GOOGLE_REDIRECT_URL != ""
}

func mustEnv(v *viper.Viper, key string) string {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
