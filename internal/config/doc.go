// Package config defines the configuration structure for seniormoment.
//
// Configuration is organized into logical sections (Server, Funnel, Sound,
// Alarms) and uses code generation via optgen to create functional option
// helpers. Defaults come from `default` struct tags applied by
// github.com/creasty/defaults.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Funnel         - Sound funnel and heartbeat
//	├── Sound          - Simulated audio device
//	├── Alarms         - Alarm ringing and presets
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────────┬─────────────┬────────────────────────────────────────┐
//	│ Field            │ Default     │ Description                            │
//	├──────────────────┼─────────────┼────────────────────────────────────────┤
//	│ ServerMode       │ "dev"       │ Server mode: "prod" or "dev"           │
//	│ Address          │ "127.0.0.1" │ HTTP listen address                    │
//	│ HTTPPort         │ 8000        │ HTTP server listen port                │
//	└──────────────────┴─────────────┴────────────────────────────────────────┘
//
// # Funnel Configuration
//
//	┌───────────────────┬─────────┬──────────────────────────────────────────┐
//	│ Field             │ Default │ Description                              │
//	├───────────────────┼─────────┼──────────────────────────────────────────┤
//	│ MaxPending        │ 64      │ Pending sounds cap (0 for unbounded)     │
//	│ HeartbeatInterval │ 1s      │ Heartbeat tick period                    │
//	│ RunTimeout        │ 2m      │ Force-release a stuck sound (0 disables) │
//	│ AdvanceOnComplete │ false   │ Start the next sound on completion       │
//	│ GateOnDevice      │ true    │ Keep sounds pending while device is busy │
//	└───────────────────┴─────────┴──────────────────────────────────────────┘
//
// # Sound Configuration
//
//	┌──────────────┬─────────┬─────────────────────────────────────────────┐
//	│ Field        │ Default │ Description                                 │
//	├──────────────┼─────────┼─────────────────────────────────────────────┤
//	│ WordDuration │ 350ms   │ Time the simulated device spends per word   │
//	└──────────────┴─────────┴─────────────────────────────────────────────┘
//
// # Alarms Configuration
//
//	┌───────────────┬─────────┬────────────────────────────────────────────┐
//	│ Field         │ Default │ Description                                │
//	├───────────────┼─────────┼────────────────────────────────────────────┤
//	│ PresetsFile   │ ""      │ YAML file with alarms created at startup   │
//	│ ReRingInitial │ 30s     │ First delay between rings                  │
//	│ ReRingMax     │ 5m      │ Longest delay between rings                │
//	│ MaxRings      │ 10      │ Rings before giving up (0 rings forever)   │
//	└───────────────┴─────────┴────────────────────────────────────────────┘
//
// # Loading
//
// Load layers, in increasing order of precedence: struct defaults, an optional
// configuration file, SENIORMOMENT_* environment variables and command line
// flags registered with RegisterFlags. Keys are the mapstructure tags joined
// with dots, e.g. funnel.max-pending or SENIORMOMENT_FUNNEL_MAX_PENDING.
//
// # Code Generation
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Funnel Sound Alarms
//
// Generated helpers include:
//
//   - NewConfigurationWithOptions(...ConfigurationOption) - Create with options
//   - NewConfigurationWithOptionsAndDefaults(...ConfigurationOption) - Create with defaults + options
//   - WithServer(Server), WithFunnel(Funnel), etc. - Set nested structs
//   - DebugMap() - Returns map for debug logging (respects debugmap tags)
//
// # Usage Example
//
//	cfg := config.NewConfigurationWithOptionsAndDefaults(
//	    config.WithServer(*config.NewServerWithOptionsAndDefaults(
//	        config.WithHTTPPort(9000),
//	    )),
//	    config.WithLogLevel("debug"),
//	)
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
