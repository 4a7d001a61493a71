package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	Enabled  bool   `yaml:"enabled"`
}

type RemindersConfig struct {
	// Enabled is a pointer so an omitted key means on; only an explicit
	// `enabled: false` turns the daily sweep off.
	Enabled  *bool  `yaml:"enabled"`
	At       string `yaml:"at"`       // HH:MM, local time
	Timezone string `yaml:"timezone"` // empty = system local
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret     string `yaml:"jwt_secret"`
		TokenTTLHours int    `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
	Email     EmailConfig     `yaml:"email"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Reminders RemindersConfig `yaml:"reminders"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "maintdesk.db"
	}
	if cfg.Auth.TokenTTLHours == 0 {
		cfg.Auth.TokenTTLHours = 12
	}
	if cfg.Reminders.At == "" {
		cfg.Reminders.At = "08:00"
	}
	if cfg.Reminders.Enabled == nil {
		enabled := true
		cfg.Reminders.Enabled = &enabled
	}
	return &cfg
}
