package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

// EnvPrefix prefix of environment overrides, e.g. SMC_DATABASE_HOST.
// Leaf fields carry split_words instead of an envconfig name so that
// unprefixed variables like PATH or USER are never read.
const EnvPrefix = "SMC"

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrEnvOverride   = errors.New("config: failed to apply environment overrides")
	ErrInvalidConfig = errors.New("config: invalid config")
)

var validate = validator.New()

type Config struct {
	Server     Server     `toml:"server" envconfig:"SERVER"`
	Database   Database   `toml:"database" envconfig:"DATABASE"`
	Logs       Logs       `toml:"logs" envconfig:"LOGS"`
	Metrics    Metrics    `toml:"metrics" envconfig:"METRICS"`
	Scheduling Scheduling `toml:"scheduling" envconfig:"SCHEDULING"`
	Cleanup    Cleanup    `toml:"cleanup" envconfig:"CLEANUP"`
}

type Server struct {
	HTTPPort        int `toml:"http_port" split_words:"true" validate:"min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true" validate:"min=1"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true" validate:"min=1"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true" validate:"min=1"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true" validate:"min=1"`
}

type Database struct {
	Host            string `toml:"host" split_words:"true" validate:"required"`
	Port            int    `toml:"port" split_words:"true" validate:"min=1,max=65535"`
	User            string `toml:"user" split_words:"true" validate:"required"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true" validate:"required"`
	SSLMode         string `toml:"sslmode" split_words:"true" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true" validate:"min=0"`
}

// DSN connection string for lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type Logs struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true" validate:"oneof=debug info warn error"`
}

type Metrics struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true" validate:"required_if=Enabled true"`
	ServiceName string `toml:"service_name" split_words:"true" validate:"required_if=Enabled true"`
}

// Scheduling slot grid and booking-rule constants
type Scheduling struct {
	Timezone              string    `toml:"timezone" split_words:"true" validate:"required"`
	Anchors               []string  `toml:"anchors" split_words:"true" validate:"min=1,dive,required"`
	BookableAnchors       []string  `toml:"bookable_anchors" split_words:"true" validate:"min=1,dive,required"`
	InstallationAnchors   []string  `toml:"installation_anchors" split_words:"true" validate:"min=1,dive,required"`
	SlotWidthMinutes      int       `toml:"slot_width_minutes" split_words:"true" validate:"min=1"`
	BufferMinutes         int       `toml:"buffer_minutes" split_words:"true" validate:"min=0"`
	AfternoonFromHour     int       `toml:"afternoon_from_hour" split_words:"true" validate:"min=0,max=23"`
	MorningDeadlineHour   int       `toml:"morning_deadline_hour" split_words:"true" validate:"min=0,max=23"`
	AfternoonDeadlineHour int       `toml:"afternoon_deadline_hour" split_words:"true" validate:"min=0,max=23"`
	Durations             Durations `toml:"durations" envconfig:"DURATIONS"`
}

// Durations default job lengths in minutes, used when the catalog has none
type Durations struct {
	Quotation    int `toml:"quotation" split_words:"true" validate:"min=1"`
	Maintenance  int `toml:"maintenance" split_words:"true" validate:"min=1"`
	Repair       int `toml:"repair" split_words:"true" validate:"min=1"`
	Installation int `toml:"installation" split_words:"true" validate:"min=1"`
}

// Cleanup periodic removal of past override entries
type Cleanup struct {
	Enabled       bool   `toml:"enabled" split_words:"true"`
	Schedule      string `toml:"schedule" split_words:"true" validate:"required_if=Enabled true"`
	RetentionDays int    `toml:"retention_days" split_words:"true" validate:"min=0"`
}

// Load reads the TOML file at path on top of the defaults and applies SMC_* environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if _, err := cfg.Scheduling.SlotGrid(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default configuration matching the business' five-anchor day
func Default() *Config {
	return &Config{
		Server: Server{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: Database{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "scheduler",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: Logs{
			Level: "info",
		},
		Metrics: Metrics{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "service-scheduler",
		},
		Scheduling: Scheduling{
			Timezone:              domain.DefaultTimezone,
			Anchors:               []string{"09:00", "11:00", "13:00", "15:00", "17:00"},
			BookableAnchors:       []string{"09:00", "11:00", "13:00", "15:00"},
			InstallationAnchors:   []string{"09:00", "11:00", "13:00"},
			SlotWidthMinutes:      domain.DefaultSlotWidthMinutes,
			BufferMinutes:         domain.DefaultBufferMinutes,
			AfternoonFromHour:     domain.DefaultAfternoonFromHour,
			MorningDeadlineHour:   domain.DefaultMorningDeadlineHour,
			AfternoonDeadlineHour: domain.DefaultAfternoonDeadlineHour,
			Durations: Durations{
				Quotation:    domain.DefaultQuotationMinutes,
				Maintenance:  domain.DefaultMaintenanceMinutes,
				Repair:       domain.DefaultRepairMinutes,
				Installation: domain.DefaultInstallationMinutes,
			},
		},
		Cleanup: Cleanup{
			Enabled:       false,
			Schedule:      "0 3 * * *",
			RetentionDays: 30,
		},
	}
}

// SlotGrid builds the immutable slot grid handed to the rule engine
func (s Scheduling) SlotGrid() (domain.SlotGrid, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return domain.SlotGrid{}, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, s.Timezone, err)
	}

	anchors, err := parseAnchors(s.Anchors)
	if err != nil {
		return domain.SlotGrid{}, err
	}
	bookable, err := parseAnchors(s.BookableAnchors)
	if err != nil {
		return domain.SlotGrid{}, err
	}
	if err := subsetOf(bookable, anchors, "bookable anchor"); err != nil {
		return domain.SlotGrid{}, err
	}
	installation, err := parseAnchors(s.InstallationAnchors)
	if err != nil {
		return domain.SlotGrid{}, err
	}
	if err := subsetOf(installation, bookable, "installation anchor"); err != nil {
		return domain.SlotGrid{}, err
	}

	return domain.SlotGrid{
		Anchors:               anchors,
		BookableAnchors:       bookable,
		InstallationAnchors:   installation,
		SlotWidthMinutes:      s.SlotWidthMinutes,
		BufferMinutes:         s.BufferMinutes,
		AfternoonFromHour:     s.AfternoonFromHour,
		MorningDeadlineHour:   s.MorningDeadlineHour,
		AfternoonDeadlineHour: s.AfternoonDeadlineHour,
		DefaultDurations: map[domain.JobType]int{
			domain.JobTypeQuotation:    s.Durations.Quotation,
			domain.JobTypeMaintenance:  s.Durations.Maintenance,
			domain.JobTypeRepair:       s.Durations.Repair,
			domain.JobTypeInstallation: s.Durations.Installation,
		},
		Location: loc,
	}, nil
}

func parseAnchors(raw []string) ([]domain.TimeSlot, error) {
	slots := make([]domain.TimeSlot, 0, len(raw))
	prev := -1
	for _, r := range raw {
		slot, ok := domain.ParseTimeSlot(r)
		if !ok {
			return nil, fmt.Errorf("%w: unknown anchor %q", ErrInvalidConfig, r)
		}
		if slot.Hour() <= prev {
			return nil, fmt.Errorf("%w: anchors must be in ascending order", ErrInvalidConfig)
		}
		prev = slot.Hour()
		slots = append(slots, slot)
	}
	return slots, nil
}

func subsetOf(slots, of []domain.TimeSlot, what string) error {
	known := make(map[domain.TimeSlot]bool, len(of))
	for _, a := range of {
		known[a] = true
	}
	for _, s := range slots {
		if !known[s] {
			return fmt.Errorf("%w: %s %s is not on the grid", ErrInvalidConfig, what, s)
		}
	}
	return nil
}
