// Package config loads runtime settings from defaults, an optional YAML file
// and NUMEROLOGY_* environment variables, in increasing order of precedence.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Display DisplayConfig `mapstructure:"display" validate:"required"`
	MCP     MCPConfig     `mapstructure:"mcp" validate:"required"`
}

// ServerConfig contains the HTTP server and logging settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=text json"`
	Metrics   bool   `mapstructure:"metrics"`
}

// SessionConfig selects where sessions live and for how long.
type SessionConfig struct {
	Backend string        `mapstructure:"backend" validate:"required,oneof=memory file redis"`
	Dir     string        `mapstructure:"dir" validate:"required_if=Backend file"`
	TTL     time.Duration `mapstructure:"ttl" validate:"gte=0"`
	LockTTL time.Duration `mapstructure:"lock_ttl" validate:"gt=0"`

	// EncryptionKeys are base64 AES-256 keys. When set, sessions are sealed
	// at rest with the first; the rest only decrypt, for key rotation.
	EncryptionKeys []string `mapstructure:"encryption_keys" validate:"dive,base64"`
}

// RedisConfig is required when Session.Backend is "redis".
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	Prefix   string `mapstructure:"prefix"`

	// Enabled is derived from Session.Backend, not read from any source.
	Enabled bool `mapstructure:"-"`
}

// DisplayConfig controls how results are shown.
type DisplayConfig struct {
	Mode    string `mapstructure:"mode" validate:"required,oneof=brief detail"`
	Catalog string `mapstructure:"catalog" validate:"omitempty,file"`
}

// MCPConfig configures the agent tool server.
type MCPConfig struct {
	Transport string `mapstructure:"transport" validate:"required,oneof=stdio sse"`
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	BaseURL   string `mapstructure:"base_url" validate:"omitempty,url"`
}
