package utils

import (
	"os"
	"strconv"
	"time"
)

// Config holds the endpoint settings read from the environment
type Config struct {
	Port        string
	LogLevel    string
	ShopName    string
	MailDriver  string
	MailFrom    string
	MailTo      string
	MailTimeout time.Duration

	SMTPHost               string
	SMTPPort               int
	SMTPUser               string
	SMTPPass               string
	SMTPInsecureSkipVerify bool

	PostmarkServerToken string
	SendGridAPIKey      string

	NATSURL string
}

// Mail drivers selectable with MAIL_DRIVER
const (
	DriverSMTP     = "smtp"
	DriverPostmark = "postmark"
	DriverSendGrid = "sendgrid"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

// LoadConfig reads the environment. Call godotenv.Load first to pick up a .env file.
func LoadConfig() Config {
	return Config{
		Port:        getEnv("PORT", "8000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ShopName:    getEnv("SHOP_NAME", "ToDo早午餐 利澤店"),
		MailDriver:  getEnv("MAIL_DRIVER", DriverSMTP),
		MailFrom:    getEnv("SMTP_FROM", os.Getenv("EMAIL_SENDER")),
		MailTo:      os.Getenv("SMTP_TO"),
		MailTimeout: getEnvDuration("MAIL_TIMEOUT", 15*time.Second),

		SMTPHost:               os.Getenv("SMTP_HOST"),
		SMTPPort:               getEnvInt("SMTP_PORT", 587),
		SMTPUser:               os.Getenv("SMTP_USER"),
		SMTPPass:               os.Getenv("SMTP_PASS"),
		SMTPInsecureSkipVerify: getEnvBool("SMTP_INSECURE_SKIP_VERIFY", true),

		PostmarkServerToken: getEnv("POSTMARK_SERVER_TOKEN", os.Getenv("POSTMARK_API_TOKEN")),
		SendGridAPIKey:      os.Getenv("SENDGRID_API_KEY"),

		NATSURL: os.Getenv("NATS_URL"),
	}
}
