package configs

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vehicle-auctions/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port            string
		Env             string
		LogLevel        string
		ShutdownTimeout time.Duration
		SeedDemoData    bool
		AllowedOrigins  []string
	}
	Database struct {
		Driver   string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		MaxConns int32
	}
	Auth struct {
		SecretKey string
		TokenTTL  time.Duration
	}
	Settlement struct {
		PaymentWindow time.Duration
		ChatWindow    time.Duration
		PastBidsLimit int
		SweepInterval time.Duration
	}
	RateLimit struct {
		BidsPerSecond float64
		Burst         int
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.logLevel", "info")
	v.SetDefault("server.shutdownTimeout", "10s")
	v.SetDefault("server.seedDemoData", false)
	v.SetDefault("server.allowedOrigins", []string{})

	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "auctions")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxConns", 10)

	v.SetDefault("auth.secretKey", "")
	v.SetDefault("auth.tokenTTL", "24h")

	v.SetDefault("settlement.paymentWindow", "96h")
	v.SetDefault("settlement.chatWindow", "120h")
	v.SetDefault("settlement.pastBidsLimit", 3)
	v.SetDefault("settlement.sweepInterval", "1m")

	v.SetDefault("rateLimit.bidsPerSecond", 2)
	v.SetDefault("rateLimit.burst", 5)
}

// LoadConfig reads config.yaml from dir, layered over defaults and under
// environment variables. A .env file in dir is loaded first when present.
func LoadConfig(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil {
		utils.Info("No .env file found", map[string]any{"dir": dir})
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config") // Name of the config file (without extension)
	v.SetConfigType("yaml")   // Config file type
	v.AddConfigPath(dir)      // Path to look for the config file
	v.AutomaticEnv()          // Automatically map environment variables

	// Allow dots in environment variables to map to nested keys
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		utils.Warn("No config file found, using defaults", map[string]any{"dir": dir})
	}

	substituteEnvVarsInConfig(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// substituteEnvVarsInConfig expands ${VAR} references in config values
func substituteEnvVarsInConfig(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		value := v.GetString(key)
		if strings.Contains(value, "${") {
			v.Set(key, os.Expand(value, os.Getenv))
		}
	}
}

// Validate rejects settings the service cannot run with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}
	if c.Auth.SecretKey == "" {
		return errors.New("config: auth.secretKey is required")
	}
	if c.Settlement.PaymentWindow <= 0 || c.Settlement.ChatWindow <= 0 {
		return errors.New("config: settlement windows must be positive")
	}
	if c.Settlement.PastBidsLimit < 0 {
		return errors.New("config: settlement.pastBidsLimit must not be negative")
	}
	if c.Settlement.SweepInterval <= 0 {
		return errors.New("config: settlement.sweepInterval must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Server.Port, ":")
}

// DatabaseURL builds a postgres connection string from the database section
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": []string{c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}
