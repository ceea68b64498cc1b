package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	minDatastoreTimeoutMs = 2500
	maxDatastoreTimeoutMs = 12000
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server              ServerConfig              `toml:"server"`
	Database            DatabaseConfig            `toml:"database"`
	Logs                LogsConfig                `toml:"logs"`
	Metrics             MetricsConfig             `toml:"metrics"`
	Booking             BookingConfig             `toml:"booking"`
	Redis               RedisConfig               `toml:"redis"`
	Kafka               KafkaConfig               `toml:"kafka"`
	NotificationService NotificationServiceConfig `toml:"notification_service"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к Postgres
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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-настройки бронирования
type BookingConfig struct {
	Timezone                string `toml:"timezone"`
	MinHoursBeforeBooking   int    `toml:"min_hours_before_booking"`
	FallbackSlotIntervalMin int    `toml:"fallback_slot_interval_min"`
	DatastoreTimeoutMs      int    `toml:"datastore_timeout_ms"`
}

// Location часовой пояс салона
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// MinLeadTime минимальное время до начала бронирования
func (b BookingConfig) MinLeadTime() time.Duration {
	return time.Duration(b.MinHoursBeforeBooking) * time.Hour
}

// DatastoreTimeout таймаут обращений к хранилищу
func (b BookingConfig) DatastoreTimeout() time.Duration {
	return time.Duration(b.DatastoreTimeoutMs) * time.Millisecond
}

// RedisConfig настройки кэша слотов
type RedisConfig struct {
	Address              string `toml:"address"`
	Password             string `toml:"password"`
	DB                   int    `toml:"db"`
	SlotsCacheTTLSeconds int    `toml:"slots_cache_ttl_seconds"` // 0 = кэш выключен
}

// Enabled включен ли кэш
func (r RedisConfig) Enabled() bool {
	return r.Address != "" && r.SlotsCacheTTLSeconds > 0
}

// SlotsCacheTTL время жизни кэша слотов
func (r RedisConfig) SlotsCacheTTL() time.Duration {
	return time.Duration(r.SlotsCacheTTLSeconds) * time.Second
}

// KafkaConfig настройки публикации событий
type KafkaConfig struct {
	Brokers string `toml:"brokers"` // через запятую
	Topic   string `toml:"topic"`
}

// BrokerList список брокеров
func (k KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Enabled заданы ли брокеры
func (k KafkaConfig) Enabled() bool {
	return len(k.BrokerList()) > 0
}

// NotificationServiceConfig настройки клиента сервиса уведомлений
type NotificationServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Load загружает конфигурацию из TOML файла
// Переменные окружения (и .env файл, если он есть) переопределяют значения из файла
func Load(path string) (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("DB_HOST"); ok {
		c.Database.Host = v
	}
	if v, ok := os.LookupEnv("DB_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DB_PORT: %v", ErrInvalidConfig, err)
		}
		c.Database.Port = port
	}
	if v, ok := os.LookupEnv("REDIS_ADDRESS"); ok {
		c.Redis.Address = v
	}
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		c.Kafka.Brokers = v
	}
	if v, ok := os.LookupEnv("SALON_TIMEZONE"); ok {
		c.Booking.Timezone = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon-booking"
	}

	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "Asia/Tokyo"
	}
	if c.Booking.MinHoursBeforeBooking == 0 {
		c.Booking.MinHoursBeforeBooking = 2
	}
	if c.Booking.FallbackSlotIntervalMin == 0 {
		c.Booking.FallbackSlotIntervalMin = 15
	}
	if c.Booking.DatastoreTimeoutMs == 0 {
		c.Booking.DatastoreTimeoutMs = 5000
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "reservation.created"
	}

	if c.NotificationService.Timeout == 0 {
		c.NotificationService.Timeout = 5
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.MinHoursBeforeBooking < 0 {
		return fmt.Errorf("%w: booking.min_hours_before_booking must not be negative", ErrInvalidConfig)
	}
	if c.Booking.FallbackSlotIntervalMin <= 0 {
		return fmt.Errorf("%w: booking.fallback_slot_interval_min must be positive", ErrInvalidConfig)
	}
	if c.Booking.DatastoreTimeoutMs < minDatastoreTimeoutMs || c.Booking.DatastoreTimeoutMs > maxDatastoreTimeoutMs {
		return fmt.Errorf("%w: booking.datastore_timeout_ms must be within %d..%d",
			ErrInvalidConfig, minDatastoreTimeoutMs, maxDatastoreTimeoutMs)
	}
	if c.Redis.SlotsCacheTTLSeconds < 0 {
		return fmt.Errorf("%w: redis.slots_cache_ttl_seconds must not be negative", ErrInvalidConfig)
	}
	return nil
}
