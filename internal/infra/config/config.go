package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is loaded once at startup and passed to constructors; nothing in the
// process mutates it afterwards.
type Config struct {
	HTTPAddress string

	DatabaseURL string

	RedisAddress  string
	RedisPassword string
	RedisDB       int
	// RedisTimeout bounds every revocation-store round-trip.
	RedisTimeout time.Duration

	JWTSecret string
	JWTIssuer string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	EmailTokenTTL   time.Duration
	ResetTokenTTL   time.Duration

	PasswordPepper string

	AllowedOrigins   []string
	AllowCredentials bool

	RateLimitRPS   int
	RateLimitBurst int

	// PublicBaseURL is the externally visible base used in email links.
	PublicBaseURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3PublicBaseURL string
}

var requiredKeys = []string{
	"DATABASE_URL",
	"REDIS_ADDRESS",
	"JWT_SECRET",
	"PASSWORD_PEPPER",
	"SMTP_HOST",
	"MAIL_FROM",
	"S3_ENDPOINT",
	"S3_ACCESS_KEY",
	"S3_SECRET_KEY",
	"S3_BUCKET",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TIMEOUT", 500*time.Millisecond)
	v.SetDefault("JWT_ISSUER", "contacts-service")
	v.SetDefault("ACCESS_TOKEN_TTL", 15*time.Minute)
	v.SetDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour)
	v.SetDefault("EMAIL_TOKEN_TTL", 24*time.Hour)
	v.SetDefault("RESET_TOKEN_TTL", 10*time.Minute)
	v.SetDefault("ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("ALLOW_CREDENTIALS", true)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("SMTP_PORT", 465)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	for _, key := range requiredKeys {
		if v.GetString(key) == "" {
			return nil, fmt.Errorf("missing required config key %s", key)
		}
	}

	return &Config{
		HTTPAddress:      v.GetString("HTTP_ADDRESS"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RedisAddress:     v.GetString("REDIS_ADDRESS"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		RedisTimeout:     v.GetDuration("REDIS_TIMEOUT"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
		AccessTokenTTL:   v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  v.GetDuration("REFRESH_TOKEN_TTL"),
		EmailTokenTTL:    v.GetDuration("EMAIL_TOKEN_TTL"),
		ResetTokenTTL:    v.GetDuration("RESET_TOKEN_TTL"),
		PasswordPepper:   v.GetString("PASSWORD_PEPPER"),
		AllowedOrigins:   v.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials: v.GetBool("ALLOW_CREDENTIALS"),
		RateLimitRPS:     v.GetInt("RATE_LIMIT_RPS"),
		RateLimitBurst:   v.GetInt("RATE_LIMIT_BURST"),
		PublicBaseURL:    v.GetString("PUBLIC_BASE_URL"),
		SMTPHost:         v.GetString("SMTP_HOST"),
		SMTPPort:         v.GetInt("SMTP_PORT"),
		SMTPUsername:     v.GetString("SMTP_USERNAME"),
		SMTPPassword:     v.GetString("SMTP_PASSWORD"),
		MailFrom:         v.GetString("MAIL_FROM"),
		S3Endpoint:       v.GetString("S3_ENDPOINT"),
		S3AccessKey:      v.GetString("S3_ACCESS_KEY"),
		S3SecretKey:      v.GetString("S3_SECRET_KEY"),
		S3Bucket:         v.GetString("S3_BUCKET"),
		S3PublicBaseURL:  v.GetString("S3_PUBLIC_BASE_URL"),
	}, nil
}
