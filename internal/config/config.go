package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"esports-live/internal/cache"
	"esports-live/internal/upstream"
)

// Config estructura de configuración principal
type Config struct {
	Server   ServerConfig      `mapstructure:"server"`
	Cache    cache.CacheConfig `mapstructure:"cache"`
	Upstream upstream.Config   `mapstructure:"upstream"`
	Static   StaticConfig      `mapstructure:"static"`
	Logger   LoggerConfig      `mapstructure:"logger"`
}

// ServerConfig configuración del servidor HTTP
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// StaticConfig points at the front-end bundle served under /
type StaticConfig struct {
	Dir   string `mapstructure:"dir"`
	Index string `mapstructure:"index"`
}

// LoggerConfig configuración del logger
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// LoadConfig carga la configuración desde archivos de configuración y variables de entorno
func LoadConfig() (*Config, error) {
	return Load(viper.New())
}

// Load reads configuration through v, so tests can use an isolated instance
func Load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/esports-live")

	// Variables de entorno: ESL_SERVER_PORT, ESL_CACHE_BACKEND, ...
	v.SetEnvPrefix("ESL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Sin archivo se usan los valores por defecto
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// ESL_CACHE_ADDRESSES llega como string separada por comas
	if addressesStr := v.GetString("cache.addresses"); addressesStr != "" {
		addresses := strings.Split(addressesStr, ",")
		for i, addr := range addresses {
			addresses[i] = strings.TrimSpace(addr)
		}
		config.Cache.Addresses = addresses
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Cache.Backend {
	case cache.BackendMemory, cache.BackendRedis:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.DefaultTTL <= 0 || c.Cache.RecentTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.Upstream.LiveURL == "" || c.Upstream.ProURL == "" {
		return fmt.Errorf("upstream URLs are required")
	}
	return nil
}

// setDefaults establece los valores por defecto
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")

	// Cache defaults
	v.SetDefault("cache.backend", cache.BackendMemory)
	v.SetDefault("cache.default_ttl", "10s")
	v.SetDefault("cache.recent_ttl", "30s")
	v.SetDefault("cache.key_prefix", "esports-live:")
	v.SetDefault("cache.addresses", []string{"localhost:6379"})
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.database", 0)
	v.SetDefault("cache.max_retries", 3)
	v.SetDefault("cache.pool_size", 10)
	v.SetDefault("cache.min_idle_conns", 5)
	v.SetDefault("cache.dial_timeout", "5s")
	v.SetDefault("cache.read_timeout", "3s")
	v.SetDefault("cache.write_timeout", "3s")
	v.SetDefault("cache.pool_timeout", "4s")

	// Upstream defaults
	v.SetDefault("upstream.live_url", upstream.DefaultLiveURL)
	v.SetDefault("upstream.pro_url", upstream.DefaultProURL)
	v.SetDefault("upstream.timeout", "15s")
	v.SetDefault("upstream.coalesce", false)

	// Static defaults
	v.SetDefault("static.dir", "static")
	v.SetDefault("static.index", "index.html")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output_path", "stdout")
}

// GetAddress devuelve la dirección completa del servidor
func (sc *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", sc.Host, sc.Port)
}
