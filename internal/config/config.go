package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"5000"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	AppBaseURL  string `env:"APP_BASE_URL" envDefault:"http://localhost:5173"`

	JWTSecret       string   `env:"JWT_SECRET,required"`
	JWTTTLMinutes   int      `env:"JWT_TTL_MINUTES" envDefault:"60"`
	ResetTTLMinutes int      `env:"RESET_TOKEN_TTL_MINUTES" envDefault:"15"`
	AllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME" envDefault:"TripFlux"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET" envDefault:"tripflux-media"`
	S3Region    string `env:"S3_REGION"`
	S3UseSSL    bool   `env:"S3_USE_SSL" envDefault:"false"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	LLMAPIKey  string `env:"LLM_API_KEY"`
	LLMBaseURL string `env:"LLM_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"gemini-2.5-flash"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
