// Package config loads device settings from configs/config.yml and
// GREENSTACK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "GREENSTACK"

type Config struct {
	Port      string          `mapstructure:"port"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Device    DeviceConfig    `mapstructure:"device"`
	Wifi      WifiConfig      `mapstructure:"wifi"`
	Pump      PumpConfig      `mapstructure:"pump"`
	Sensors   SensorsConfig   `mapstructure:"sensors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	MDNS      MDNSConfig      `mapstructure:"mdns"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Restart   RestartConfig   `mapstructure:"restart"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // empty disables the file sink
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type DeviceConfig struct {
	Hostname string `mapstructure:"hostname"`
}

type WifiConfig struct {
	DefaultSSID        string        `mapstructure:"default_ssid"`
	DefaultPassword    string        `mapstructure:"default_password"`
	APSSID             string        `mapstructure:"ap_ssid"`
	APPassword         string        `mapstructure:"ap_password"`
	BootTimeout        time.Duration `mapstructure:"boot_timeout"`
	InteractiveTimeout time.Duration `mapstructure:"interactive_timeout"`
	PollInterval       time.Duration `mapstructure:"poll_interval"`
	SettleDelay        time.Duration `mapstructure:"settle_delay"`
}

type PumpConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

type SensorsConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type RateLimitConfig struct {
	PerSec float64 `mapstructure:"per_sec"` // <= 0 disables
	Burst  int     `mapstructure:"burst"`
}

type MDNSConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Service string `mapstructure:"service"`
}

type SimulatorConfig struct {
	// Networks maps SSID to password for the simulated radio.
	Networks       map[string]string `mapstructure:"networks"`
	AssociateDelay time.Duration     `mapstructure:"associate_delay"`
}

type RestartConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("db.path", "greenstack.db")
	v.SetDefault("device.hostname", "GreenStack")
	v.SetDefault("wifi.default_ssid", "")
	v.SetDefault("wifi.default_password", "")
	v.SetDefault("wifi.ap_ssid", "GreenStack-Setup")
	v.SetDefault("wifi.ap_password", "greenstack")
	v.SetDefault("wifi.boot_timeout", "20s")
	v.SetDefault("wifi.interactive_timeout", "15s")
	v.SetDefault("wifi.poll_interval", "500ms")
	v.SetDefault("wifi.settle_delay", "1s")
	v.SetDefault("pump.duration", "5s")
	v.SetDefault("sensors.cache_ttl", "2s")
	v.SetDefault("ratelimit.per_sec", 0)
	v.SetDefault("ratelimit.burst", 10)
	v.SetDefault("mdns.enabled", true)
	v.SetDefault("mdns.service", "_http._tcp")
	v.SetDefault("simulator.networks", map[string]string{})
	v.SetDefault("simulator.associate_delay", "2s")
	v.SetDefault("restart.delay", "1s")
}

// New returns a viper instance with defaults and env overrides applied.
// file may be empty to search ./configs and . for config.yml.
func New(file string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yml")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file if present and decodes everything into Config.
// A missing file is not an error when no explicit path was given.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Used returns the path of the loaded config file, or "" when running on defaults.
func Used(v *viper.Viper) string {
	return v.ConfigFileUsed()
}
