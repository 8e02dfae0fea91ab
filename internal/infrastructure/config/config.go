package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Config holds the configuration for both services
type Config struct {
	ChatServer  ServerConfig   `mapstructure:"chat_server"`
	ModelServer ServerConfig   `mapstructure:"model_server"`
	LLM         LLMConfig      `mapstructure:"llm"`
	Pipeline    PipelineConfig `mapstructure:"pipeline"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Log         LogConfig      `mapstructure:"log"`
	CORS        CORSConfig     `mapstructure:"cors"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LLMConfig selects and configures the generative text backend
type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url"`
	Region   string `mapstructure:"region"`
}

// PipelineConfig holds the model artifact settings
type PipelineConfig struct {
	Path          string        `mapstructure:"path"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	VerboseErrors bool          `mapstructure:"verbose_errors"`
}

// DatabaseConfig holds PostgreSQL settings
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// CORSConfig holds allowed cross-origin sources
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AllowsAll reports whether every origin is accepted
func (c CORSConfig) AllowsAll() bool {
	return len(c.AllowedOrigins) == 0 || lo.Contains(c.AllowedOrigins, "*")
}

// Load reads configuration from defaults and KRISHI_* environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KRISHI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Names used by the earlier deployments
	if err := v.BindEnv("llm.api_key", "KRISHI_LLM_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind llm.api_key: %w", err)
	}
	if err := v.BindEnv("pipeline.path", "KRISHI_PIPELINE_PATH", "MODEL_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind pipeline.path: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chat_server.host", "0.0.0.0")
	v.SetDefault("chat_server.port", 8001)
	v.SetDefault("chat_server.mode", "debug")

	v.SetDefault("model_server.host", "0.0.0.0")
	v.SetDefault("model_server.port", 8000)
	v.SetDefault("model_server.mode", "debug")

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.region", "us-east-1")

	v.SetDefault("pipeline.path", "./crop_recommender_pipeline.gob")
	v.SetDefault("pipeline.cache_ttl", 10*time.Minute)
	v.SetDefault("pipeline.verbose_errors", true)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "krishi")
	v.SetDefault("database.password", "krishi")
	v.SetDefault("database.dbname", "krishi")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("cors.allowed_origins", []string{"*"})
}
