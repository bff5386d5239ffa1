package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr    string
	ServiceName string

	// Gateway
	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	Currency          string

	// Ledger sink (sheet endpoint)
	SheetURL string

	// Mail transport
	MailUser     string
	MailPass     string
	MailFromName string
	SMTPHost     string
	SMTPPort     int

	AllowedOrigin     string
	LinksFile         string
	StrictCourseCheck bool

	// Optional infra; empty value = disabled
	PostgresDSN  string
	RedisAddr    string
	KafkaBrokers []string

	LedgerGroup   string
	LedgerWorkers int
}

func Load() Config {
	port := getenv("X_ZOHO_CATALYST_LISTEN_PORT", getenv("PORT", "5500"))
	return Config{
		HTTPAddr:          ":" + port,
		ServiceName:       getenv("SERVICE_NAME", "payment-relay"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayBaseURL:   getenv("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		Currency:          getenv("ORDER_CURRENCY", "INR"),
		SheetURL:          os.Getenv("SHEET_URL"),
		MailUser:          os.Getenv("MAIL_USER"),
		MailPass:          os.Getenv("MAIL_PASS"),
		MailFromName:      getenv("MAIL_FROM_NAME", "Genius Minds"),
		SMTPHost:          getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          atoi(getenv("SMTP_PORT", "587"), 587),
		AllowedOrigin:     getenv("ALLOWED_ORIGIN", "https://www.genius-minds.co.in"),
		LinksFile:         getenv("LINKS_FILE", "driveLinks.json"),
		StrictCourseCheck: parseBool(os.Getenv("STRICT_COURSE_CHECK")),
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		KafkaBrokers:      splitCSV(os.Getenv("KAFKA_BROKERS")),
		LedgerGroup:       getenv("LEDGER_GROUP", "ledger-mirror"),
		LedgerWorkers:     atoi(getenv("LEDGER_WORKERS", "4"), 4),
	}
}

// Validate reports the settings the relay cannot run without.
func (c Config) Validate() error {
	var errs []error
	if c.RazorpayKeyID == "" || c.RazorpayKeySecret == "" {
		errs = append(errs, errors.New("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required"))
	}
	if c.SheetURL == "" {
		errs = append(errs, errors.New("SHEET_URL is required"))
	}
	if c.MailUser == "" || c.MailPass == "" {
		errs = append(errs, errors.New("MAIL_USER and MAIL_PASS are required"))
	}
	return errors.Join(errs...)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
