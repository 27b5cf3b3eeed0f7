package qcircuit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Shots     ShotsConfig     `mapstructure:"shots"`
	Key       KeyConfig       `mapstructure:"key"`
	Remote    RemoteConfig    `mapstructure:"remote"`
	Breaker   BreakerConfig   `mapstructure:"breaker"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Log       LogConfig       `mapstructure:"log"`
}

// ShotsConfig holds the shot count per routine.
type ShotsConfig struct {
	Search     int `mapstructure:"search"`
	Allocation int `mapstructure:"allocation"`
	Key        int `mapstructure:"key"`
}

type KeyConfig struct {
	DefaultLength int `mapstructure:"defaultLength"`
}

// RemoteConfig describes the remote provider; an empty URL or Token makes
// every connectivity attempt fail.
type RemoteConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Name         string        `mapstructure:"name"`
	URL          string        `mapstructure:"url"`
	Token        string        `mapstructure:"token"`
	Timeout      time.Duration `mapstructure:"timeout"`
	PollInterval time.Duration `mapstructure:"pollInterval"`
	MaxPolls     int           `mapstructure:"maxPolls"`
}

type BreakerConfig struct {
	MaxFailures  int           `mapstructure:"maxFailures"`
	ResetTimeout time.Duration `mapstructure:"resetTimeout"`
	HalfOpenMax  int           `mapstructure:"halfOpenMax"`
}

type SimulatorConfig struct {
	MaxQubits int    `mapstructure:"maxQubits"`
	Seed      uint64 `mapstructure:"seed"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func NewConfig() *Config {
	return &Config{
		Shots: ShotsConfig{
			Search:     1024,
			Allocation: 1024,
			Key:        1,
		},
		Key: KeyConfig{
			DefaultLength: 256,
		},
		Remote: RemoteConfig{
			Enabled:      true,
			Name:         "remote",
			Timeout:      30 * time.Second,
			PollInterval: time.Second,
			MaxPolls:     10,
		},
		Breaker: BreakerConfig{
			MaxFailures:  3,
			ResetTimeout: time.Minute,
			HalfOpenMax:  1,
		},
		Simulator: SimulatorConfig{
			MaxQubits: 24,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

/*
LoadConfig layers an optional config file and QCIRCUIT_* environment
variables over the defaults of NewConfig. Nested keys map to variables with
dots replaced by underscores, e.g. QCIRCUIT_REMOTE_TOKEN.

Parameters:
  - path: Config file (any format viper reads); empty skips the file

Returns:
  - *Config: The merged configuration
  - error: When the file cannot be read or a value cannot be decoded
*/
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, NewConfig())

	v.SetEnvPrefix("qcircuit")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it on Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("shots.search", d.Shots.Search)
	v.SetDefault("shots.allocation", d.Shots.Allocation)
	v.SetDefault("shots.key", d.Shots.Key)
	v.SetDefault("key.defaultLength", d.Key.DefaultLength)
	v.SetDefault("remote.enabled", d.Remote.Enabled)
	v.SetDefault("remote.name", d.Remote.Name)
	v.SetDefault("remote.url", d.Remote.URL)
	v.SetDefault("remote.token", d.Remote.Token)
	v.SetDefault("remote.timeout", d.Remote.Timeout)
	v.SetDefault("remote.pollInterval", d.Remote.PollInterval)
	v.SetDefault("remote.maxPolls", d.Remote.MaxPolls)
	v.SetDefault("breaker.maxFailures", d.Breaker.MaxFailures)
	v.SetDefault("breaker.resetTimeout", d.Breaker.ResetTimeout)
	v.SetDefault("breaker.halfOpenMax", d.Breaker.HalfOpenMax)
	v.SetDefault("simulator.maxQubits", d.Simulator.MaxQubits)
	v.SetDefault("simulator.seed", d.Simulator.Seed)
	v.SetDefault("log.level", d.Log.Level)
}
