package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string
	// TrustProxy keys rate limiting on X-Forwarded-For / X-Real-Ip. Enable
	// only behind a proxy that overwrites those headers.
	TrustProxy bool

	LogLevel  string
	LogFormat string // "json" | "text"

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	// VerificationBackend selects where one-time codes live: "dynamo" | "memory".
	VerificationBackend   string
	VerificationCodeTTL   time.Duration
	VerificationRetention time.Duration
	// ConcealUnknownAccounts makes reset/confirmation requests answer the same
	// way whether or not the login exists.
	ConcealUnknownAccounts bool
	ResetPasswordURL       string
	ConfirmEmailURL        string

	// NotifyGateway selects the delivery transport: "smtp" | "sns" | "mailersend" | "log".
	NotifyGateway string
	NotifyTimeout time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion   string
	SNSTopicARN string

	MailerSendAPIKey    string
	MailerSendFromName  string
	MailerSendFromEmail string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users             string
	Teams             string
	VerificationCodes string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:    getEnv("APP_PORT", "3000"),
		AppEnv:     getEnv("APP_ENV", "development"),
		TrustProxy: getEnvBool("TRUST_PROXY", false),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:             getEnv("DYNAMO_TABLE_USERS", "users"),
			Teams:             getEnv("DYNAMO_TABLE_TEAMS", "teams"),
			VerificationCodes: getEnv("DYNAMO_TABLE_VERIFICATION_CODES", "verification_codes"),
		},

		VerificationBackend:    getEnv("VERIFICATION_BACKEND", "dynamo"),
		VerificationCodeTTL:    getEnvDuration("VERIFICATION_CODE_TTL", 30*time.Minute),
		VerificationRetention:  getEnvDuration("VERIFICATION_CODE_RETENTION", 24*time.Hour),
		ConcealUnknownAccounts: getEnvBool("CONCEAL_UNKNOWN_ACCOUNTS", false),
		ResetPasswordURL:       getEnv("RESET_PASSWORD_URL", "http://localhost:3000/v1/password-reset/confirm"),
		ConfirmEmailURL:        getEnv("CONFIRM_EMAIL_URL", "http://localhost:3000/v1/email-confirmation/confirm"),

		NotifyGateway: getEnv("NOTIFY_GATEWAY", "smtp"),
		NotifyTimeout: getEnvDuration("NOTIFY_TIMEOUT", 10*time.Second),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion:   getEnv("SNS_REGION", "us-east-1"),
		SNSTopicARN: getEnv("SNS_TOPIC_ARN", ""),

		MailerSendAPIKey:    getEnv("MAILERSEND_API_KEY", ""),
		MailerSendFromName:  getEnv("MAILERSEND_FROM_NAME", "Search Team"),
		MailerSendFromEmail: getEnv("MAILERSEND_FROM_EMAIL", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("30m", "1h30m").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
