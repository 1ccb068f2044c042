package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Stats struct {
		// Base URL of the statistics service, used by the main service client.
		URL string `yaml:"url"`
		// Listen port of the statistics service itself.
		Port int `yaml:"port"`
		// DSN of the statistics database (pgx pool).
		DSN string `yaml:"db_url"`
		// Application name recorded with every hit.
		AppName string `yaml:"app_name"`
	} `yaml:"stats"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (container/test mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Stats.URL = os.Getenv("STATS_URL")
	cfg.Stats.DSN = os.Getenv("STATS_DB_URL")
	cfg.Stats.Port, _ = strconv.Atoi(os.Getenv("STATS_PORT"))

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Stats.Port == 0 {
		cfg.Stats.Port = 9090
	}
	if cfg.Stats.AppName == "" {
		cfg.Stats.AppName = "afisha-main-service"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
