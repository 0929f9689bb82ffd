package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string         `json:"env"`
	Http     HttpConfig     `json:"http"`
	Storage  StorageConfig  `json:"storage"`
	Postgres PostgresConfig `json:"postgres"`
	Redis    RedisConfig    `json:"redis"`
	Maps     MapsConfig     `json:"maps"`
	Plan     PlanConfig     `json:"plan"`
	TTS      TTSConfig      `json:"tts"`
	Vision   VisionConfig   `json:"vision"`
	Notify   NotifyConfig   `json:"notify"`
	APIKey   string         `json:"api_key,omitempty"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type StorageConfig struct {
	// Driver selects the report table backend: "csv" (default) or
	// "postgres".
	Driver   string `json:"driver"`
	CSVPath  string `json:"csv_path"`
	ImageDir string `json:"image_dir"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
}

type MapsConfig struct {
	APIKey    string        `json:"api_key,omitempty"`
	BaseURL   string        `json:"base_url"`
	Timeout   time.Duration `json:"timeout"`
	CacheSize int           `json:"cache_size"`
}

type PlanConfig struct {
	APIKey string `json:"api_key,omitempty"`
	Model  string `json:"model"`
}

type TTSConfig struct {
	BaseURL string        `json:"base_url"`
	Lang    string        `json:"lang"`
	Timeout time.Duration `json:"timeout"`
}

type VisionConfig struct {
	URL     string        `json:"url"`
	Timeout time.Duration `json:"timeout"`
}

type NotifyConfig struct {
	WebhookURL string `json:"webhook_url"`
	QueueKey   string `json:"queue_key"`
	Disabled   bool   `json:"disabled"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Driver:   getEnv("STORAGE_DRIVER", "csv"),
			CSVPath:  getEnv("HAZARDS_CSV_PATH", "sidewalk_hazards.csv"),
			ImageDir: getEnv("IMAGE_DIR", "uploaded_images"),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "sidewalksafe_db"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        20,
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Maps: MapsConfig{
			APIKey:    getEnv("MAPS_API_KEY", ""),
			BaseURL:   getEnv("MAPS_BASE_URL", "https://maps.googleapis.com"),
			Timeout:   getEnvDuration("MAPS_TIMEOUT", 5*time.Second),
			CacheSize: getEnvInt("MAPS_CACHE_SIZE", 1000),
		},
		Plan: PlanConfig{
			APIKey: getEnv("GENAI_API_KEY", ""),
			Model:  getEnv("GENAI_MODEL", "gemini-2.0-flash"),
		},
		TTS: TTSConfig{
			BaseURL: getEnv("TTS_BASE_URL", "https://translate.google.com/translate_tts"),
			Lang:    getEnv("TTS_LANG", "en"),
			Timeout: getEnvDuration("TTS_TIMEOUT", 10*time.Second),
		},
		Vision: VisionConfig{
			URL:     getEnv("VISION_URL", ""),
			Timeout: getEnvDuration("VISION_TIMEOUT", 10*time.Second),
		},
		Notify: NotifyConfig{
			WebhookURL: getEnv("WEBHOOK_URL", ""),
			QueueKey:   getEnv("NOTIFY_QUEUE_KEY", "reports:events"),
			Disabled:   getEnvBool("NOTIFY_DISABLED", false),
		},
		APIKey: getEnv("API_KEY", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	switch c.Storage.Driver {
	case "csv":
		if c.Storage.CSVPath == "" {
			return errors.New("HAZARDS_CSV_PATH required for csv driver")
		}
	case "postgres":
		if c.Postgres.Host == "" {
			return errors.New("POSTGRES_HOST required for postgres driver")
		}
	default:
		return errors.New("STORAGE_DRIVER must be csv or postgres")
	}

	if !c.Notify.Disabled && c.Notify.WebhookURL == "" {
		return errors.New("WEBHOOK_URL required unless NOTIFY_DISABLED=true")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
