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

	Email EmailConfig `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // в минутах
	} `yaml:"jwt"`
}

// EmailConfig выбирает SMTP настройки по провайдеру.
// Распознаваемые провайдеры: gmail, outlook, sendgrid, custom.
type EmailConfig struct {
	Provider       string `yaml:"provider"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	SMTPHost       string `yaml:"smtp_host"`
	SMTPPort       int    `yaml:"smtp_port"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
	ReplyTo        string `yaml:"reply_to"`
	Enabled        bool   `yaml:"enabled"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml")

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

		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 7 * 24 * 60 // неделя

	cfg.Email.Provider = os.Getenv("EMAIL_PROVIDER")
	cfg.Email.Username = os.Getenv("EMAIL_USER")
	cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	cfg.Email.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.FromEmail = os.Getenv("EMAIL_USER")
	cfg.Email.ReplyTo = os.Getenv("REPLY_TO_EMAIL")
	cfg.Email.Enabled = os.Getenv("EMAIL_ENABLED") == "true"

	AppConfig = &cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
