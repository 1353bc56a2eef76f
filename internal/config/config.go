package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// DefaultSessionSecret solo sirve para desarrollo local.
const DefaultSessionSecret = "change-this-secret-key"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort          string `env:"HTTP_PORT"`
	Port              string `env:"PORT" envDefault:"8080"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	SessionSecret     string `env:"SESSION_SECRET" envDefault:"change-this-secret-key"`
	SessionTTLMinutes int    `env:"SESSION_TTL_MINUTES" envDefault:"720"`
	CookieSecure      bool   `env:"COOKIE_SECURE" envDefault:"false"`

	ModelPath       string `env:"MODEL_PATH" envDefault:"best_model.json"`
	EncodersPath    string `env:"ENCODERS_PATH" envDefault:"encoders.json"`
	ONNXLibraryPath string `env:"ONNX_LIBRARY_PATH"`

	DatabaseURL string `env:"DATABASE_URL"`
	UsersDBPath string `env:"USERS_DB_PATH" envDefault:"users.db"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	LoginMaxAttempts   int `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginWindowMinutes int `env:"LOGIN_WINDOW_MINUTES" envDefault:"10"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = cfg.Port
	}
	return &cfg, nil
}

// SessionTTL devuelve la duracion de la sesion autenticada.
func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// LoginWindow devuelve la ventana del limitador de logins.
func (c *Config) LoginWindow() time.Duration {
	return time.Duration(c.LoginWindowMinutes) * time.Minute
}
