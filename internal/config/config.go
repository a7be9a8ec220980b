// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvFileName is the optional file of TIMELOG_* variables read from the
// config file's directory. Variables set in the environment win.
const EnvFileName = ".env"

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
}

// ScheduleConfig holds the allocation settings of a working day.
type ScheduleConfig struct {
	Workdays            []string `toml:"workdays" validate:"min=1,dive,weekday"` // e.g., ["monday", "tuesday", ...]
	DayStart            string   `toml:"day_start" validate:"clock"`             // e.g., "08:00"
	Capacity            string   `toml:"capacity" validate:"capacity"`           // e.g., "8h", "7h30m"
	RelocationGuardDays int      `toml:"relocation_guard_days" validate:"min=1"` // max days work may move
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path" validate:"required"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Dir string `toml:"dir"` // directory of timelog.log
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			Workdays:            []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			DayStart:            "08:00",
			Capacity:            "8h",
			RelocationGuardDays: 5,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Log: LogConfig{
			Dir: defaultLogDir(),
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "timelog.db"
	}
	return filepath.Join(home, ".local", "share", "timelog", "timelog.db")
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "state", "timelog")
}

// DefaultConfigPath returns the config file path, TIMELOG_CONFIG if set.
func DefaultConfigPath() string {
	if p := os.Getenv("TIMELOG_CONFIG"); p != "" {
		return expandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timelog", "config.toml")
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	fileVars, err := readEnvFile(filepath.Join(filepath.Dir(path), EnvFileName))
	if err != nil {
		return nil, err
	}
	getenv := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileVars[key]
	}

	if err := applyEnvOverrides(cfg, getenv); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.Dir = expandPath(cfg.Log.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// readEnvFile returns the variables of a dotenv file, or nothing if it does not exist.
func readEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	return vars, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config, getenv func(string) string) error {
	if v := getenv("TIMELOG_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := getenv("TIMELOG_CAPACITY"); v != "" {
		cfg.Schedule.Capacity = v
	}
	if v := getenv("TIMELOG_RELOCATION_GUARD_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TIMELOG_RELOCATION_GUARD_DAYS must be a number, got %q", v)
		}
		cfg.Schedule.RelocationGuardDays = days
	}
	if v := getenv("TIMELOG_WORKDAYS"); v != "" {
		cfg.Schedule.Workdays = strings.Split(v, ",")
		for i := range cfg.Schedule.Workdays {
			cfg.Schedule.Workdays[i] = strings.TrimSpace(cfg.Schedule.Workdays[i])
		}
	}

	if v := getenv("TIMELOG_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := getenv("TIMELOG_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}

	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		return name
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return isClock(fl.Field().String())
	})
	_ = v.RegisterValidation("capacity", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0 && d <= 24*time.Hour
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return isValidWeekday(fl.Field().String())
	})
	return v
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldError(fieldErrs[0])
	}
	if err != nil {
		return err
	}
	if c.DayStartOffset()+c.CapacityDuration() > 24*time.Hour {
		return fmt.Errorf("day_start %s plus capacity %s runs past midnight",
			c.Schedule.DayStart, c.Schedule.Capacity)
	}
	return nil
}

// fieldError turns the first failed check into a message naming the config key.
func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "clock":
		return fmt.Errorf("%s must be in HH:MM format, got %q", fe.Field(), fe.Value())
	case "capacity":
		return fmt.Errorf("capacity must be a duration between 0 and 24h such as 8h, got %q", fe.Value())
	case "weekday":
		return fmt.Errorf("invalid workday: %v", fe.Value())
	case "required":
		return fmt.Errorf("%s must be set", fe.Field())
	case "min":
		if fe.Field() == "workdays" {
			return errors.New("at least one workday must be configured")
		}
		return fmt.Errorf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Errorf("%s failed %s check", fe.Namespace(), fe.Tag())
	}
}

// isClock reports whether t is a time of day in HH:MM format.
func isClock(t string) bool {
	if len(t) != 5 || t[2] != ':' {
		return false
	}
	hour, min := t[0:2], t[3:5]
	return isDigits(hour) && isDigits(min) && hour <= "23" && min <= "59"
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

var validWeekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

func isValidWeekday(day string) bool {
	return validWeekdays[strings.ToLower(day)]
}

// DayStartOffset returns day_start as an offset from midnight, or 0 if it
// is malformed.
func (c *Config) DayStartOffset() time.Duration {
	if !isClock(c.Schedule.DayStart) {
		return 0
	}
	hour, _ := strconv.Atoi(c.Schedule.DayStart[0:2])
	minute, _ := strconv.Atoi(c.Schedule.DayStart[3:5])
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
}

// CapacityDuration returns the parsed capacity, or 0 if it does not parse.
func (c *Config) CapacityDuration() time.Duration {
	d, err := time.ParseDuration(c.Schedule.Capacity)
	if err != nil {
		return 0
	}
	return d
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
