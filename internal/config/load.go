package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load, so that
// "funnel.max-pending" is read from SENIORMOMENT_FUNNEL_MAX_PENDING.
const EnvPrefix = "SENIORMOMENT"

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"config":              "",
	"log-format":          "log-format",
	"log-level":           "log-level",
	"server-mode":         "server.mode",
	"address":             "server.address",
	"http-port":           "server.http-port",
	"max-pending":         "funnel.max-pending",
	"heartbeat-interval":  "funnel.heartbeat-interval",
	"run-timeout":         "funnel.run-timeout",
	"advance-on-complete": "funnel.advance-on-complete",
	"gate-on-device":      "funnel.gate-on-device",
	"word-duration":       "sound.word-duration",
	"presets-file":        "alarms.presets-file",
	"rering-initial":      "alarms.rering-initial",
	"rering-max":          "alarms.rering-max",
	"max-rings":           "alarms.max-rings",
}

// RegisterFlags adds the configuration flags to fs, defaulted from the
// configuration defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := NewConfigurationWithOptionsAndDefaults()

	fs.String("config", "", "Path to a configuration file (yaml, json or toml)")
	fs.String("log-format", d.LogFormat, "Log format: 'console' or 'json'")
	fs.String("log-level", d.LogLevel, "Log level: debug, info, warn or error")
	fs.String("server-mode", d.Server.ServerMode, "Server mode: 'dev' or 'prod'")
	fs.String("address", d.Server.Address, "HTTP listen address")
	fs.Int("http-port", d.Server.HTTPPort, "HTTP listen port")
	fs.Int("max-pending", d.Funnel.MaxPending, "Maximum number of sounds waiting to play (0 for unbounded)")
	fs.Duration("heartbeat-interval", d.Funnel.HeartbeatInterval, "Interval between heartbeat ticks")
	fs.Duration("run-timeout", d.Funnel.RunTimeout, "Release a sound that holds the device longer than this (0 to disable)")
	fs.Bool("advance-on-complete", d.Funnel.AdvanceOnComplete, "Start the next sound as soon as one finishes instead of on the next tick")
	fs.Bool("gate-on-device", d.Funnel.GateOnDevice, "Keep sounds queued while the audio device is busy")
	fs.Duration("word-duration", d.Sound.WordDuration, "Time the simulated device spends per spoken word")
	fs.String("presets-file", d.Alarms.PresetsFile, "YAML file with alarms to create at startup")
	fs.Duration("rering-initial", d.Alarms.ReRingInitial, "Delay before an alarm rings again")
	fs.Duration("rering-max", d.Alarms.ReRingMax, "Longest delay between rings of the same alarm")
	fs.Int("max-rings", d.Alarms.MaxRings, "Dismiss an alarm after this many rings (0 rings until dismissed)")
}

// Load builds the configuration from defaults, an optional configuration
// file, SENIORMOMENT_* environment variables and fs, in increasing order of
// precedence. fs may be nil.
func Load(v *viper.Viper, fs *pflag.FlagSet) (*Configuration, error) {
	cfg := NewConfigurationWithOptionsAndDefaults()
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil || key == "" {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key with viper. AutomaticEnv only resolves
// keys viper already knows about.
func setDefaults(v *viper.Viper, c *Configuration) {
	v.SetDefault("log-format", c.LogFormat)
	v.SetDefault("log-level", c.LogLevel)

	v.SetDefault("server.mode", c.Server.ServerMode)
	v.SetDefault("server.address", c.Server.Address)
	v.SetDefault("server.http-port", c.Server.HTTPPort)

	v.SetDefault("funnel.max-pending", c.Funnel.MaxPending)
	v.SetDefault("funnel.heartbeat-interval", c.Funnel.HeartbeatInterval)
	v.SetDefault("funnel.run-timeout", c.Funnel.RunTimeout)
	v.SetDefault("funnel.advance-on-complete", c.Funnel.AdvanceOnComplete)
	v.SetDefault("funnel.gate-on-device", c.Funnel.GateOnDevice)

	v.SetDefault("sound.word-duration", c.Sound.WordDuration)

	v.SetDefault("alarms.presets-file", c.Alarms.PresetsFile)
	v.SetDefault("alarms.rering-initial", c.Alarms.ReRingInitial)
	v.SetDefault("alarms.rering-max", c.Alarms.ReRingMax)
	v.SetDefault("alarms.max-rings", c.Alarms.MaxRings)
}
