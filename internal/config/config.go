package config

// Config holds all application configuration, organized into logical groups.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Host     string `mapstructure:"host"      validate:"required"`
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the persistence settings. Driver selects the
// backend: "postgres" for the real store, "memory" for the ephemeral
// in-process store used in development and demos.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"         validate:"required,oneof=postgres memory"`
	URL          string `mapstructure:"url"            validate:"required_if=Driver postgres,omitempty,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	// Migrate runs pending schema migrations on startup when true.
	Migrate bool `mapstructure:"migrate"`
}

// CORSConfig lists the origins the browser frontend may call from.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CacheConfig controls the optional Redis read cache for the todo list.
type CacheConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	RedisAddr     string `mapstructure:"redis_addr" validate:"required_if=Enabled true"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"    validate:"gte=0"`
	TTLSeconds    int    `mapstructure:"ttl_seconds" validate:"gte=0"`
}
