// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Seller    SellerConfig    `yaml:"seller"`
	Buyer     BuyerConfig     `yaml:"buyer"`
	Reporting ReportingConfig `yaml:"reporting"`
	Events    EventsConfig    `yaml:"events"`
	Demo      DemoConfig      `yaml:"demo"`
	OpenAPI   OpenAPIConfig   `yaml:"openapi"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig configures the event store.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite" or "memory"
	DSN    string `yaml:"dsn"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"` // Enable /metrics endpoint
}

// SecurityConfig protects a dashboard with HTTP basic auth.
// Password may be a bcrypt hash or plain text.
type SecurityConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Realm    string `yaml:"realm,omitempty"`
}

// DashboardConfig holds the defaults applied to omitted query parameters.
// Zero values fall back to the built-in defaults of each dashboard.
type DashboardConfig struct {
	OverviewDays int `yaml:"overview_days"`
	DailyDays    int `yaml:"daily_days"`
	TopLimit     int `yaml:"top_limit"`
	RecentLimit  int `yaml:"recent_limit"`
	PageSize     int `yaml:"page_size"`
}

// SellerConfig configures the seller usage ledger and its dashboard.
type SellerConfig struct {
	APIPath         string          `yaml:"api_path"`
	DefaultTenantID string          `yaml:"default_tenant_id"`
	AutoLogging     bool            `yaml:"auto_logging"`
	AutoLogSkip     []string        `yaml:"auto_log_skip,omitempty"` // extra path prefixes never auto-logged
	Security        SecurityConfig  `yaml:"security"`
	Dashboard       DashboardConfig `yaml:"dashboard"`
}

// BuyerConfig configures the buyer spending ledger and its dashboard.
type BuyerConfig struct {
	Enabled          bool            `yaml:"enabled"`
	APIPath          string          `yaml:"api_path"`
	DefaultBuyerID   string          `yaml:"default_buyer_id"`
	DefaultBuyerName string          `yaml:"default_buyer_name"`
	AutoLogging      bool            `yaml:"auto_logging"`       // wrap outgoing clients with SpendingTransport
	ServiceIDMapping string          `yaml:"service_id_mapping"` // "host:serviceId,host2:serviceId2"
	Security         SecurityConfig  `yaml:"security"`
	Dashboard        DashboardConfig `yaml:"dashboard"`
}

// ReportingConfig configures calendar-day reporting.
type ReportingConfig struct {
	Timezone string `yaml:"timezone"` // IANA name, e.g. "Europe/Berlin"
}

// Location resolves the reporting timezone.
func (r ReportingConfig) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(r.Timezone)
}

// EventsConfig configures fan-out of stored events to NATS.
type EventsConfig struct {
	Enabled         bool          `yaml:"enabled"`
	URL             string        `yaml:"url"`
	Name            string        `yaml:"name"`
	UsageSubject    string        `yaml:"usage_subject"`
	SpendingSubject string        `yaml:"spending_subject"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
}

// DemoConfig configures demo data generation.
type DemoConfig struct {
	Enabled     bool  `yaml:"enabled"`       // expose the demo routes
	LoadOnStart bool  `yaml:"load_on_start"` // seed empty ledgers on boot
	Count       int   `yaml:"count"`
	Days        int   `yaml:"days"`
	Seed        int64 `yaml:"seed"` // 0 picks a random seed
}

// OpenAPIConfig configures OpenAPI/Swagger documentation.
type OpenAPIConfig struct {
	Enabled bool `yaml:"enabled"` // Enable OpenAPI endpoints
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	X402DASH_SERVER_HOST            - Server host (default: 0.0.0.0)
//	X402DASH_SERVER_PORT            - Server port (default: 8080)
//	X402DASH_DATABASE_DRIVER        - sqlite or memory (default: sqlite)
//	X402DASH_DATABASE_DSN           - Database path (default: x402dash.db)
//	X402DASH_LOG_LEVEL              - debug, info, warn, error (default: info)
//	X402DASH_LOG_FORMAT             - json or console (default: json)
//	X402DASH_METRICS_ENABLED        - Enable /metrics (default: true)
//	X402DASH_OPENAPI_ENABLED        - Enable OpenAPI/Swagger (default: true)
//	X402DASH_SELLER_DEFAULT_TENANT  - Default seller tenant id
//	X402DASH_SELLER_AUTO_LOGGING    - Log every served request
//	X402DASH_DASHBOARD_USERNAME     - Basic auth user for both dashboards
//	X402DASH_DASHBOARD_PASSWORD     - Basic auth password (bcrypt or plain)
//	X402DASH_BUYER_ENABLED          - Enable the buyer ledger
//	X402DASH_BUYER_ID               - Default buyer id
//	X402DASH_BUYER_NAME             - Default buyer name
//	X402DASH_BUYER_SERVICE_MAPPING  - host:serviceId,... mapping
//	X402DASH_TIMEZONE               - Reporting timezone (default: UTC)
//	X402DASH_NATS_URL               - Enables event fan-out to this server
//	X402DASH_DEMO_ENABLED           - Expose demo routes
//	X402DASH_DEMO_LOAD_ON_START     - Seed empty ledgers on boot
func LoadFromEnv() (*Config, error) {
	cfg := defaultConfig()

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadWithFallback loads path when it exists and falls back to environment
// variables otherwise.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

// defaultConfig returns the values booleans start from before the file is
// read, so an omitted key keeps its documented default.
func defaultConfig() *Config {
	return &Config{
		Metrics: MetricsConfig{Enabled: true},
		OpenAPI: OpenAPIConfig{Enabled: true},
		Buyer:   BuyerConfig{Enabled: true},
		Demo:    DemoConfig{Enabled: true},
	}
}

// applyEnvOverrides applies X402DASH_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	// Server configuration
	if v := os.Getenv("X402DASH_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("X402DASH_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("X402DASH_SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("X402DASH_SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	// Database configuration
	if v := os.Getenv("X402DASH_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("X402DASH_DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}

	// Logging configuration
	if v := os.Getenv("X402DASH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("X402DASH_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("X402DASH_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("X402DASH_OPENAPI_ENABLED"); v != "" {
		cfg.OpenAPI.Enabled = parseBool(v)
	}

	// Seller configuration
	if v := os.Getenv("X402DASH_SELLER_DEFAULT_TENANT"); v != "" {
		cfg.Seller.DefaultTenantID = v
	}
	if v := os.Getenv("X402DASH_SELLER_AUTO_LOGGING"); v != "" {
		cfg.Seller.AutoLogging = parseBool(v)
	}

	// Dashboard credentials apply to both sides.
	if v := os.Getenv("X402DASH_DASHBOARD_USERNAME"); v != "" {
		cfg.Seller.Security.Username = v
		cfg.Buyer.Security.Username = v
	}
	if v := os.Getenv("X402DASH_DASHBOARD_PASSWORD"); v != "" {
		cfg.Seller.Security.Password = v
		cfg.Buyer.Security.Password = v
		cfg.Seller.Security.Enabled = true
		cfg.Buyer.Security.Enabled = true
	}

	// Buyer configuration
	if v := os.Getenv("X402DASH_BUYER_ENABLED"); v != "" {
		cfg.Buyer.Enabled = parseBool(v)
	}
	if v := os.Getenv("X402DASH_BUYER_ID"); v != "" {
		cfg.Buyer.DefaultBuyerID = v
	}
	if v := os.Getenv("X402DASH_BUYER_NAME"); v != "" {
		cfg.Buyer.DefaultBuyerName = v
	}
	if v := os.Getenv("X402DASH_BUYER_SERVICE_MAPPING"); v != "" {
		cfg.Buyer.ServiceIDMapping = v
	}

	if v := os.Getenv("X402DASH_TIMEZONE"); v != "" {
		cfg.Reporting.Timezone = v
	}

	if v := os.Getenv("X402DASH_NATS_URL"); v != "" {
		cfg.Events.URL = v
		cfg.Events.Enabled = true
	}

	// Demo configuration
	if v := os.Getenv("X402DASH_DEMO_ENABLED"); v != "" {
		cfg.Demo.Enabled = parseBool(v)
	}
	if v := os.Getenv("X402DASH_DEMO_LOAD_ON_START"); v != "" {
		cfg.Demo.LoadOnStart = parseBool(v)
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "x402dash.db"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Seller.APIPath == "" {
		cfg.Seller.APIPath = "/x402-dashboard/api"
	}
	if cfg.Seller.DefaultTenantID == "" {
		cfg.Seller.DefaultTenantID = "default"
	}
	if cfg.Buyer.APIPath == "" {
		cfg.Buyer.APIPath = "/x402-buyer-dashboard/api"
	}
	if cfg.Buyer.DefaultBuyerID == "" {
		cfg.Buyer.DefaultBuyerID = "default"
	}

	if cfg.Events.URL == "" {
		cfg.Events.URL = "nats://127.0.0.1:4222"
	}
	if cfg.Events.Name == "" {
		cfg.Events.Name = "x402dash"
	}
	if cfg.Events.UsageSubject == "" {
		cfg.Events.UsageSubject = "x402.usage.logged"
	}
	if cfg.Events.SpendingSubject == "" {
		cfg.Events.SpendingSubject = "x402.spending.logged"
	}
	if cfg.Events.ConnectTimeout == 0 {
		cfg.Events.ConnectTimeout = 5 * time.Second
	}

	if cfg.Demo.Count == 0 {
		cfg.Demo.Count = 100
	}
	if cfg.Demo.Days == 0 {
		cfg.Demo.Days = 30
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	validDrivers := map[string]bool{"sqlite": true, "memory": true}
	if !validDrivers[cfg.Database.Driver] {
		return fmt.Errorf("database.driver must be 'sqlite' or 'memory', got %q", cfg.Database.Driver)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	if cfg.Logging.Format != "json" && cfg.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	if !strings.HasPrefix(cfg.Seller.APIPath, "/") {
		return fmt.Errorf("seller.api_path must start with '/'")
	}
	if !strings.HasPrefix(cfg.Buyer.APIPath, "/") {
		return fmt.Errorf("buyer.api_path must start with '/'")
	}
	if cfg.Buyer.Enabled && strings.TrimSuffix(cfg.Seller.APIPath, "/") == strings.TrimSuffix(cfg.Buyer.APIPath, "/") {
		return fmt.Errorf("seller.api_path and buyer.api_path must differ")
	}
	if err := validateSecurity("seller.security", cfg.Seller.Security); err != nil {
		return err
	}
	if err := validateSecurity("buyer.security", cfg.Buyer.Security); err != nil {
		return err
	}
	for i, entry := range strings.Split(cfg.Buyer.ServiceIDMapping, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if host, id, ok := strings.Cut(entry, ":"); !ok || strings.TrimSpace(host) == "" || strings.TrimSpace(id) == "" {
			return fmt.Errorf("buyer.service_id_mapping[%d]: expected host:serviceId, got %q", i, entry)
		}
	}

	if _, err := cfg.Reporting.Location(); err != nil {
		return fmt.Errorf("reporting.timezone: %w", err)
	}

	if cfg.Events.Enabled && cfg.Events.URL == "" {
		return fmt.Errorf("events.url is required when events.enabled is true")
	}

	if cfg.Demo.Count < 1 || cfg.Demo.Count > 10000 {
		return fmt.Errorf("demo.count must be between 1 and 10000, got %d", cfg.Demo.Count)
	}
	if cfg.Demo.Days < 1 || cfg.Demo.Days > 365 {
		return fmt.Errorf("demo.days must be between 1 and 365, got %d", cfg.Demo.Days)
	}

	return nil
}

func validateSecurity(section string, s SecurityConfig) error {
	if !s.Enabled {
		return nil
	}
	if s.Username == "" {
		return fmt.Errorf("%s.username is required when security is enabled", section)
	}
	if s.Password == "" {
		return fmt.Errorf("%s.password is required when security is enabled", section)
	}
	return nil
}
