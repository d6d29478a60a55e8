// Package config загрузка конфигурации сервиса из config.toml
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	PaymentGateway PaymentGatewayConfig `toml:"payment_gateway"`
	SMSGateway     SMSGatewayConfig     `toml:"sms_gateway"`
	Booking        BookingConfig        `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PaymentGatewayConfig настройки клиента платёжного шлюза
// Sandbox=true направляет запросы в песочницу шлюза (платежи не списываются)
type PaymentGatewayConfig struct {
	URL        string `toml:"url"`
	Timeout    int    `toml:"timeout"`
	MerchantID string `toml:"merchant_id"`
	Sandbox    bool   `toml:"sandbox"`
}

// SMSGatewayConfig настройки клиента SMS-уведомлений
type SMSGatewayConfig struct {
	URL      string `toml:"url"`
	Timeout  int    `toml:"timeout"`
	SenderID string `toml:"sender_id"`
	Enabled  bool   `toml:"enabled"`
}

// BookingConfig бизнес-настройки бронирований
type BookingConfig struct {
	ExpiryHours          int    `toml:"expiry_hours"`           // Время жизни брони до автоотмены
	ExpiryWarningMinutes int    `toml:"expiry_warning_minutes"` // За сколько минут до истечения слать предупреждение
	SweepSchedule        string `toml:"sweep_schedule"`         // Cron-расписание sweep'а просроченных броней
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "pw-session-service"
	}
	if cfg.Booking.ExpiryHours == 0 {
		cfg.Booking.ExpiryHours = 24
	}
	if cfg.Booking.ExpiryWarningMinutes == 0 {
		cfg.Booking.ExpiryWarningMinutes = 60
	}
	if cfg.Booking.SweepSchedule == "" {
		cfg.Booking.SweepSchedule = "*/5 * * * *"
	}
}
