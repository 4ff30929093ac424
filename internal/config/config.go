package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode     string `mapstructure:"mode"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	PongWait   time.Duration `mapstructure:"pong_wait"`
	WriteWait  time.Duration `mapstructure:"write_wait"`
	SendBuffer int           `mapstructure:"send_buffer"`

	TLSCertFile string `mapstructure:"tls_cert_file"`
	TLSKeyFile  string `mapstructure:"tls_key_file"`

	StrictSender bool   `mapstructure:"strict_sender"`
	Backpressure string `mapstructure:"backpressure"`

	CreateRoomLimit    int           `mapstructure:"create_room_limit"`
	CreateRoomInterval time.Duration `mapstructure:"create_room_interval"`

	Telemetry  TelemetryConfig   `mapstructure:"telemetry"`
	ICEServers []ICEServerConfig `mapstructure:"ice_servers"`
}

type TelemetryConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("read_limit", 65536)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("write_wait", "10s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("tls_cert_file", "")
	v.SetDefault("tls_key_file", "")
	v.SetDefault("strict_sender", false)
	v.SetDefault("backpressure", "drop")
	v.SetDefault("create_room_limit", 5)
	v.SetDefault("create_room_interval", "10s")
	v.SetDefault("telemetry.driver", "memory")
	v.SetDefault("telemetry.dsn", "")
	v.SetDefault("ice_servers", []map[string]any{
		{"urls": []string{"stun:stun.l.google.com:19302"}},
	})
}

// Load reads config/config.<CONFIG_ENV>.yaml (CONFIG_ENV defaults to "dev")
// and applies HANDSHAKE_* environment overrides.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

// LoadFile is Load with an explicit file. A missing file is not an error.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	v.SetEnvPrefix("HANDSHAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Bool("tls", cfg.TLSEnabled()).
		Str("telemetry", cfg.Telemetry.Driver).
		Msg("config ready")
	return &cfg, nil
}

var (
	ErrPingPeriod   = errors.New("ping_period must be positive and shorter than pong_wait")
	ErrTLSHalfSet   = errors.New("tls_cert_file and tls_key_file must be set together")
	ErrBackpressure = errors.New("backpressure must be drop or kick")
	ErrTelemetry    = errors.New("telemetry.driver must be memory or sqlite")
)

func (c *Config) Validate() error {
	if c.PingPeriod <= 0 || c.PingPeriod >= c.PongWait {
		return ErrPingPeriod
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return ErrTLSHalfSet
	}
	switch c.Backpressure {
	case "drop", "kick":
	default:
		return fmt.Errorf("%w: %q", ErrBackpressure, c.Backpressure)
	}
	switch c.Telemetry.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("%w: %q", ErrTelemetry, c.Telemetry.Driver)
	}
	if c.SendBuffer <= 0 {
		return fmt.Errorf("send_buffer must be positive, got %d", c.SendBuffer)
	}
	return nil
}

func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
