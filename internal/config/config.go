package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	AppEnv   string

	DatabaseURL string
	RabbitMQURL string

	RedisAddr     string
	RedisPass     string
	AuthRateLimit int

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail        string
	AdminPasswordHash string

	Mail  MailConfig
	Kommo KommoConfig

	PayoutCheckInterval time.Duration
	CORSOrigins         []string
}

type MailConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Enabled: sem host o envio de e-mail fica desligado.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

type KommoConfig struct {
	BaseURL  string
	Token    string
	StatusID int
}

func (k KommoConfig) Enabled() bool {
	return k.Token != "" && k.BaseURL != ""
}

// Load lê o .env (se existir) e as variáveis de ambiente.
func Load() (*Config, error) {
	// .env é opcional: em produção tudo vem do ambiente
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		AppEnv:              getEnv("APP_ENV", "development"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RabbitMQURL:         os.Getenv("RABBITMQ_URL"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPass:           os.Getenv("REDIS_PASS"),
		AuthRateLimit:       getEnvAsInt("AUTH_RATE_LIMIT", 10),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTTTL:              getEnvAsDuration("JWT_TTL", 24*time.Hour),
		AdminEmail:          os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash:   os.Getenv("ADMIN_PASSWORD_HASH"),
		PayoutCheckInterval: getEnvAsDuration("PAYOUT_CHECK_INTERVAL", time.Hour),
		CORSOrigins:         getEnvAsList("CORS_ORIGINS", []string{"*"}),
		Mail: MailConfig{
			Host: os.Getenv("MAIL_HOST"),
			Port: getEnvAsInt("MAIL_PORT", 587),
			User: os.Getenv("MAIL_USER"),
			Pass: os.Getenv("MAIL_PASS"),
			From: getEnv("MAIL_FROM", "parceiros@tillit.com.br"),
		},
		Kommo: KommoConfig{
			BaseURL:  os.Getenv("KOMMO_BASE_URL"),
			Token:    os.Getenv("KOMMO_API_TOKEN"),
			StatusID: getEnvAsInt("KOMMO_STATUS_ID", 0),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET é obrigatório")
	}
	if len(c.JWTSecret) < 32 && c.IsProduction() {
		return fmt.Errorf("JWT_SECRET deve ter ao menos 32 caracteres em produção")
	}
	if c.IsProduction() && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL é obrigatório em produção")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL deve ser positivo")
	}
	if c.PayoutCheckInterval <= 0 {
		return fmt.Errorf("PAYOUT_CHECK_INTERVAL deve ser positivo")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

func getEnvAsList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
