package config

import (
	"errors"
	"fmt"
	"time"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Funnel Sound Alarms

type Configuration struct {
	Server    Server `debugmap:"visible" mapstructure:"server"`
	Funnel    Funnel `debugmap:"visible" mapstructure:"funnel"`
	Sound     Sound  `debugmap:"visible" mapstructure:"sound"`
	Alarms    Alarms `debugmap:"visible" mapstructure:"alarms"`
	LogFormat string `debugmap:"visible" mapstructure:"log-format" default:"console"`
	LogLevel  string `debugmap:"visible" mapstructure:"log-level" default:"info"`
}

type Server struct {
	ServerMode string `debugmap:"visible" mapstructure:"mode" default:"dev"`
	Address    string `debugmap:"visible" mapstructure:"address" default:"127.0.0.1"`
	HTTPPort   int    `debugmap:"visible" mapstructure:"http-port" default:"8000"`
}

type Funnel struct {
	MaxPending        int           `debugmap:"visible" mapstructure:"max-pending" default:"64"`
	HeartbeatInterval time.Duration `debugmap:"visible" mapstructure:"heartbeat-interval" default:"1s"`
	RunTimeout        time.Duration `debugmap:"visible" mapstructure:"run-timeout" default:"2m"`
	AdvanceOnComplete bool          `debugmap:"visible" mapstructure:"advance-on-complete" default:"false"`
	GateOnDevice      bool          `debugmap:"visible" mapstructure:"gate-on-device" default:"true"`
}

type Sound struct {
	WordDuration time.Duration `debugmap:"visible" mapstructure:"word-duration" default:"350ms"`
}

type Alarms struct {
	PresetsFile   string        `debugmap:"visible" mapstructure:"presets-file"`
	ReRingInitial time.Duration `debugmap:"visible" mapstructure:"rering-initial" default:"30s"`
	ReRingMax     time.Duration `debugmap:"visible" mapstructure:"rering-max" default:"5m"`
	MaxRings      int           `debugmap:"visible" mapstructure:"max-rings" default:"10"`
}

// Validate checks values that defaults cannot guarantee.
func (c *Configuration) Validate() error {
	var errs []error

	switch c.Server.ServerMode {
	case "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("invalid server mode %q: must be 'dev' or 'prod'", c.Server.ServerMode))
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid http port %d", c.Server.HTTPPort))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q: must be 'console' or 'json'", c.LogFormat))
	}
	if c.Funnel.MaxPending < 0 {
		errs = append(errs, errors.New("funnel max pending must not be negative"))
	}
	if c.Funnel.HeartbeatInterval <= 0 {
		errs = append(errs, errors.New("funnel heartbeat interval must be positive"))
	}
	if c.Funnel.RunTimeout < 0 {
		errs = append(errs, errors.New("funnel run timeout must not be negative"))
	}
	if c.Alarms.MaxRings < 0 {
		errs = append(errs, errors.New("alarm max rings must not be negative"))
	}
	if c.Alarms.ReRingInitial <= 0 || c.Alarms.ReRingMax < c.Alarms.ReRingInitial {
		errs = append(errs, fmt.Errorf("invalid re-ring interval %s..%s", c.Alarms.ReRingInitial, c.Alarms.ReRingMax))
	}

	return errors.Join(errs...)
}
