package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/jnails/salon-booking-service/internal/domain"
)

// Config is the full service configuration loaded from config.toml.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
	Admin    AdminConfig    `toml:"admin"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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

// DSN renders the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig tunes the salon calendar. Zero values fall back to the
// salon defaults.
type BookingConfig struct {
	StartHour           int `toml:"start_hour"`
	EndHour             int `toml:"end_hour"`
	SlotDurationMinutes int `toml:"slot_duration_minutes"`
	MinNoticeHours      int `toml:"min_notice_hours"`
	MaxAdvanceMonths    int `toml:"max_advance_months"`
	AvailableDatesCount int `toml:"available_dates_count"`
	// ClosedWeekday follows time.Weekday numbering, 0 is Sunday.
	ClosedWeekday int `toml:"closed_weekday"`
}

// AdminConfig protects the back office surface. An empty key disables
// the admin routes entirely.
type AdminConfig struct {
	Key string `toml:"key"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
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
	if c.Logs.File == "" {
		c.Logs.File = "logs/app.log"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon-booking-service"
	}

	if c.Booking.StartHour == 0 {
		c.Booking.StartHour = domain.DefaultBusinessStartHour
	}
	if c.Booking.EndHour == 0 {
		c.Booking.EndHour = domain.DefaultBusinessEndHour
	}
	if c.Booking.SlotDurationMinutes == 0 {
		c.Booking.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if c.Booking.MinNoticeHours == 0 {
		c.Booking.MinNoticeHours = domain.DefaultMinNoticeHours
	}
	if c.Booking.MaxAdvanceMonths == 0 {
		c.Booking.MaxAdvanceMonths = domain.DefaultMaxAdvanceMonths
	}
	if c.Booking.AvailableDatesCount == 0 {
		c.Booking.AvailableDatesCount = domain.DefaultAvailableDatesCount
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.Booking.StartHour >= c.Booking.EndHour {
		return fmt.Errorf("config: booking.start_hour must be before booking.end_hour")
	}
	if c.Booking.SlotDurationMinutes <= 0 || 60%c.Booking.SlotDurationMinutes != 0 {
		return fmt.Errorf("config: booking.slot_duration_minutes must divide an hour")
	}
	if c.Booking.ClosedWeekday < 0 || c.Booking.ClosedWeekday > 6 {
		return fmt.Errorf("config: booking.closed_weekday must be between 0 (Sunday) and 6 (Saturday)")
	}
	return nil
}
