package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultRefreshInterval = time.Hour
	DefaultInstanceAddress = "127.0.0.1:47200"
	envPrefix              = "CALENDARWEEK"
)

// Config represents application configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Tray      TrayConfig      `mapstructure:"tray"`
	Calendar  CalendarConfig  `mapstructure:"calendar"`
	Instance  InstanceConfig  `mapstructure:"instance"`
	Autostart AutostartConfig `mapstructure:"autostart"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// TrayConfig represents tray icon behaviour
type TrayConfig struct {
	RefreshInterval string `mapstructure:"refresh_interval"`
	Title           bool   `mapstructure:"title"` // Show week number as text next to the icon where supported
}

// CalendarConfig represents calendar view configuration
type CalendarConfig struct {
	WeekLabel    string `mapstructure:"week_label"` // "last" or "first"
	HolidaysFile string `mapstructure:"holidays_file"`
	OutputDir    string `mapstructure:"output_dir"`
}

// InstanceConfig represents single-instance lock configuration
type InstanceConfig struct {
	Address string `mapstructure:"address"`
}

// AutostartConfig represents login startup configuration
type AutostartConfig struct {
	FixMoved bool `mapstructure:"fix_moved"`
}

// Load loads configuration from file. An empty path searches the default
// locations; a config file that does not exist yields defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.calendarweek")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(dir + "/calendarweek")
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("tray.refresh_interval", DefaultRefreshInterval.String())
	v.SetDefault("tray.title", true)
	v.SetDefault("calendar.week_label", "last")
	v.SetDefault("calendar.holidays_file", "")
	v.SetDefault("calendar.output_dir", "")
	v.SetDefault("instance.address", DefaultInstanceAddress)
	v.SetDefault("autostart.fix_moved", false)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Calendar.WeekLabel {
	case "", "last", "first":
	default:
		return fmt.Errorf("calendar.week_label must be 'last' or 'first', got '%s'", c.Calendar.WeekLabel)
	}

	if c.Tray.RefreshInterval != "" {
		d, err := time.ParseDuration(c.Tray.RefreshInterval)
		if err != nil {
			return fmt.Errorf("tray.refresh_interval: %w", err)
		}
		if d < time.Second {
			return fmt.Errorf("tray.refresh_interval must be at least 1s, got %s", d)
		}
	}

	if c.Instance.Address != "" {
		if _, _, err := net.SplitHostPort(c.Instance.Address); err != nil {
			return fmt.Errorf("instance.address: %w", err)
		}
	}

	return nil
}

// GetRefreshInterval returns how often the tray re-checks the week number
func (c *TrayConfig) GetRefreshInterval() time.Duration {
	if c.RefreshInterval == "" {
		return DefaultRefreshInterval
	}
	duration, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return DefaultRefreshInterval
	}
	return duration
}

// GetOutputDir returns the directory the HTML calendar is written to
func (c *CalendarConfig) GetOutputDir() string {
	if c.OutputDir == "" {
		return os.TempDir()
	}
	return c.OutputDir
}

// GetAddress returns the single-instance loopback address
func (c *InstanceConfig) GetAddress() string {
	if c.Address == "" {
		return DefaultInstanceAddress
	}
	return c.Address
}

// ExpandEnvVars expands environment variables in config paths
func (c *Config) ExpandEnvVars() {
	c.Log.File = os.ExpandEnv(c.Log.File)
	c.Calendar.HolidaysFile = os.ExpandEnv(c.Calendar.HolidaysFile)
	c.Calendar.OutputDir = os.ExpandEnv(c.Calendar.OutputDir)
}
