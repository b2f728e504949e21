package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Waitlist  WaitlistConfig  `toml:"waitlist"`
	Notifier  NotifierConfig  `toml:"notifier"`
}

// ServerConfig конфигурация HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig конфигурация подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к базе данных
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig конфигурация логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig конфигурация Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig конфигурация подключения к Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RateLimitConfig конфигурация ограничителя частоты запросов
type RateLimitConfig struct {
	Enabled  bool   `toml:"enabled"`
	Limit    int    `toml:"limit"`    // запросов в окно
	WindowMS int    `toml:"window_ms"` // длина окна, миллисекунды
	Prefix   string `toml:"prefix"`
	FailOpen bool   `toml:"fail_open"`
}

// SchedulerConfig конфигурация фоновых задач
type SchedulerConfig struct {
	Enabled         bool   `toml:"enabled"`
	MaterializeCron string `toml:"materialize_cron"` // расписание материализатора
	ExpireCron      string `toml:"expire_cron"`      // расписание сметания просроченных предложений
	WindowDays      int    `toml:"window_days"`      // окно материализации
}

// WaitlistConfig конфигурация листа ожидания
type WaitlistConfig struct {
	Mode            string `toml:"mode"`              // broadcast | single_offer
	OfferTTLMinutes int    `toml:"offer_ttl_minutes"` // срок действия предложения
}

// NotifierConfig конфигурация клиента диспетчера уведомлений
type NotifierConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.Waitlist.Mode != "" && c.Waitlist.Mode != "broadcast" && c.Waitlist.Mode != "single_offer" {
		return fmt.Errorf("config: waitlist.mode must be broadcast or single_offer, got %q", c.Waitlist.Mode)
	}
	return nil
}
