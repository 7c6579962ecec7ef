package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for Healthmate
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Security  SecurityConfig  `mapstructure:"security"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
	Reminders RemindersConfig `mapstructure:"reminders"`
	Channels  ChannelsConfig  `mapstructure:"channels"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Address      string `mapstructure:"address"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

// StorageConfig holds database settings
type StorageConfig struct {
	DataDir    string `mapstructure:"data_dir"`
	SQLitePath string `mapstructure:"sqlite_path"`
	BadgerPath string `mapstructure:"badger_path"`
}

// SecurityConfig holds security settings
type SecurityConfig struct {
	JWTSecret     string   `mapstructure:"jwt_secret"`
	TokenTTLHours int      `mapstructure:"token_ttl_hours"`
	AllowOrigins  []string `mapstructure:"allow_origins"`
	LoginRPS      float64  `mapstructure:"login_rps"`
	LoginBurst    int      `mapstructure:"login_burst"`
}

// ScheduleConfig holds day-window settings
type ScheduleConfig struct {
	WindowLength int `mapstructure:"window_length"` // 5 or 7
	TodayIndex   int `mapstructure:"today_index"`   // position of today in the window
}

// RemindersConfig holds dose reminder settings
type RemindersConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	LeadMinutes int  `mapstructure:"lead_minutes"`
}

// ChannelsConfig holds notification channel settings
type ChannelsConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// TelegramConfig holds Telegram delivery settings
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Load loads configuration from file, env, and defaults
func Load(configPath, dataDir string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if dataDir == "" {
		dataDir = getDefaultDataDir()
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	v.Set("storage.data_dir", dataDir)
	v.SetDefault("storage.sqlite_path", filepath.Join(dataDir, "healthmate.db"))
	v.SetDefault("storage.badger_path", filepath.Join(dataDir, "badger"))

	if configPath == "" {
		configPath = filepath.Join(dataDir, "healthmate.yaml")
	}

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Environment variables (HEALTHMATE_SERVER_PORT, HEALTHMATE_SECURITY_JWT_SECRET, etc.)
	v.SetEnvPrefix("HEALTHMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	loadEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)

	v.SetDefault("security.allow_origins", []string{"*"})
	v.SetDefault("security.token_ttl_hours", 168)
	v.SetDefault("security.login_rps", 1.0)
	v.SetDefault("security.login_burst", 5)

	v.SetDefault("schedule.window_length", 7)
	v.SetDefault("schedule.today_index", 2)

	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.lead_minutes", 15)
}

func getDefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "healthmate")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}

	return filepath.Join(home, ".local", "share", "healthmate")
}

// loadEnvOverrides covers the env vars Viper's AutomaticEnv misses for
// nested keys that were never touched by defaults or the config file.
func loadEnvOverrides(cfg *Config) {
	getEnv := func(key, fallback string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		return fallback
	}

	cfg.Server.Address = getEnv("HEALTHMATE_SERVER_ADDRESS", cfg.Server.Address)
	if port := os.Getenv("HEALTHMATE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	cfg.Security.JWTSecret = getEnv("HEALTHMATE_SECURITY_JWT_SECRET", cfg.Security.JWTSecret)

	cfg.Channels.Telegram.BotToken = getEnv("HEALTHMATE_CHANNELS_TELEGRAM_BOT_TOKEN", cfg.Channels.Telegram.BotToken)
	if chatID := os.Getenv("HEALTHMATE_CHANNELS_TELEGRAM_CHAT_ID"); chatID != "" {
		if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
			cfg.Channels.Telegram.ChatID = id
		}
	}
}

func validate(cfg *Config) error {
	if cfg.Schedule.WindowLength != 5 && cfg.Schedule.WindowLength != 7 {
		return fmt.Errorf("schedule.window_length must be 5 or 7, got %d", cfg.Schedule.WindowLength)
	}
	if cfg.Schedule.TodayIndex < 0 || cfg.Schedule.TodayIndex >= cfg.Schedule.WindowLength {
		return fmt.Errorf("schedule.today_index %d outside window of length %d", cfg.Schedule.TodayIndex, cfg.Schedule.WindowLength)
	}
	if cfg.Reminders.LeadMinutes < 0 {
		return fmt.Errorf("reminders.lead_minutes must not be negative")
	}
	if cfg.Channels.Telegram.Enabled && cfg.Channels.Telegram.BotToken == "" {
		return fmt.Errorf("channels.telegram.bot_token required when telegram is enabled")
	}
	return nil
}
