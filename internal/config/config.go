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
	Admission AdmissionConfig `toml:"admission"`
	Activity  ActivityConfig  `toml:"activity"`
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
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AdmissionConfig настройки admission-проверки одобрения бронирований
type AdmissionConfig struct {
	// SerializeApprovals выполнять одобрение в сериализуемой транзакции.
	// Закрывает гонку check-then-act между конкурентными одобрениями на одну дату.
	SerializeApprovals bool `toml:"serialize_approvals"`
	// CapacityCheckTimeout таймаут подсчёта занятых мест в секундах.
	// Истечение трактуется как "capacity unknown" и одобрение отклоняется.
	CapacityCheckTimeout int `toml:"capacity_check_timeout"`
}

// ActivityConfig пороги формирования ленты активности
type ActivityConfig struct {
	// RecentWindowDays окно в днях, в пределах которого событие считается свежим
	RecentWindowDays int `toml:"recent_window_days"`
	// UpdateDeltaSeconds минимальная разница updated_at - created_at в секундах,
	// после которой бронирование считается обновлённым, а не новым
	UpdateDeltaSeconds int `toml:"update_delta_seconds"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

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
		cfg.Metrics.ServiceName = "trek-admission-service"
	}
	if cfg.Admission.CapacityCheckTimeout == 0 {
		cfg.Admission.CapacityCheckTimeout = 5
	}
	if cfg.Activity.RecentWindowDays == 0 {
		cfg.Activity.RecentWindowDays = 7
	}
	if cfg.Activity.UpdateDeltaSeconds == 0 {
		cfg.Activity.UpdateDeltaSeconds = 60
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if cfg.Activity.RecentWindowDays < 0 {
		return fmt.Errorf("config: activity.recent_window_days must be non-negative")
	}
	return nil
}
