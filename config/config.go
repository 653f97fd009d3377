package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"eduplatform/constants"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DBConfig struct {
	// Driver is "postgres" or "sqlite". SQLitePath is used by the latter.
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type CloudinaryConfig struct {
	URL string `yaml:"url"`
}

type GoogleConfig struct {
	ClientID string `yaml:"client_id"`
}

type CleanupConfig struct {
	Cron    string `yaml:"cron"`
	DaysOld int    `yaml:"days_old"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	DB         DBConfig         `yaml:"db"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
	Google     GoogleConfig     `yaml:"google"`
	Cleanup    CleanupConfig    `yaml:"cleanup"`
	Log        LogConfig        `yaml:"log"`
}

func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8083"},
		DB:      DBConfig{Driver: "postgres", Host: "localhost", Port: 5432, SSLMode: "disable"},
		JWT:     JWTConfig{TTL: constants.AccessTokenTTL},
		SMTP:    SMTPConfig{Port: 587},
		Cleanup: CleanupConfig{Cron: constants.DefaultCleanupCron, DaysOld: constants.DefaultCleanupDaysOld},
		Log:     LogConfig{Level: "info"},
	}
}

// LoadEnv loads .env into the process environment if the file exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}
}

// Load reads the yaml file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
	}

	if err := overrideFromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.DB.Driver != "postgres" && c.DB.Driver != "sqlite" {
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	if c.Cleanup.DaysOld < 0 {
		return errors.New("cleanup days_old must not be negative")
	}
	return nil
}

// DSN is the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

func overrideFromEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("PORT", &cfg.Server.Port)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Server.CORSOrigins = append(cfg.Server.CORSOrigins, o)
			}
		}
	}

	str("DB_DRIVER", &cfg.DB.Driver)
	str("DB_SQLITE_PATH", &cfg.DB.SQLitePath)
	str("DB_HOST", &cfg.DB.Host)
	str("DB_USER", &cfg.DB.User)
	str("DB_PASSWORD", &cfg.DB.Password)
	str("DB_NAME", &cfg.DB.Name)
	str("DB_SSLMODE", &cfg.DB.SSLMode)

	str("REDIS_ADDR", &cfg.Redis.Addr)
	str("REDIS_USER", &cfg.Redis.Username)
	str("REDIS_PASSWORD", &cfg.Redis.Password)

	str("JWT_SECRET", &cfg.JWT.Secret)
	if v := os.Getenv("JWT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_TTL: %w", err)
		}
		cfg.JWT.TTL = d
	}

	str("SMTP_HOST", &cfg.SMTP.Host)
	str("SMTP_USERNAME", &cfg.SMTP.Username)
	str("SMTP_PASSWORD", &cfg.SMTP.Password)
	str("SMTP_FROM", &cfg.SMTP.From)

	str("CLOUDINARY_URL", &cfg.Cloudinary.URL)
	str("GOOGLE_CLIENT_ID", &cfg.Google.ClientID)
	str("CLEANUP_CRON", &cfg.Cleanup.Cron)
	str("LOG_LEVEL", &cfg.Log.Level)

	for key, dst := range map[string]*int{
		"DB_PORT":          &cfg.DB.Port,
		"REDIS_DB":         &cfg.Redis.DB,
		"SMTP_PORT":        &cfg.SMTP.Port,
		"CLEANUP_DAYS_OLD": &cfg.Cleanup.DaysOld,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// ConnectCloudinary returns nil when no CLOUDINARY_URL is configured.
func ConnectCloudinary(cfg CloudinaryConfig) (*cloudinary.Cloudinary, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return cld, nil
}
