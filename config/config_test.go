package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/x402dash/x402dash/config"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
server:
  host: "127.0.0.1"
  port: 9090
  request_timeout: 15s

database:
  driver: "sqlite"
  dsn: ":memory:"

seller:
  api_path: "/ops/seller"
  default_tenant_id: "acme"
  auto_logging: true
  auto_log_skip: ["/static"]
  security:
    enabled: true
    username: "admin"
    password: "secret"
  dashboard:
    overview_days: 14

buyer:
  enabled: true
  default_buyer_id: "agent-1"
  default_buyer_name: "Research Agent"
  service_id_mapping: "api.openai.com:openai,api.weather.io:weather"

reporting:
  timezone: "Europe/Berlin"

events:
  enabled: true
  url: "nats://nats:4222"
`

	cfg := writeAndLoad(t, content)

	if cfg.Server.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr = %s, want 127.0.0.1:9090", cfg.Server.Addr())
	}
	if cfg.Server.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v, want 15s", cfg.Server.RequestTimeout)
	}
	if cfg.Seller.APIPath != "/ops/seller" || cfg.Seller.DefaultTenantID != "acme" {
		t.Errorf("Seller = %+v", cfg.Seller)
	}
	if !cfg.Seller.AutoLogging || len(cfg.Seller.AutoLogSkip) != 1 {
		t.Errorf("Seller auto logging = %v %v", cfg.Seller.AutoLogging, cfg.Seller.AutoLogSkip)
	}
	if !cfg.Seller.Security.Enabled || cfg.Seller.Security.Username != "admin" {
		t.Errorf("Seller.Security = %+v", cfg.Seller.Security)
	}
	if cfg.Seller.Dashboard.OverviewDays != 14 {
		t.Errorf("OverviewDays = %d, want 14", cfg.Seller.Dashboard.OverviewDays)
	}
	if cfg.Buyer.DefaultBuyerName != "Research Agent" {
		t.Errorf("DefaultBuyerName = %s, want Research Agent", cfg.Buyer.DefaultBuyerName)
	}
	loc, err := cfg.Reporting.Location()
	if err != nil || loc.String() != "Europe/Berlin" {
		t.Errorf("Location() = %v, %v, want Europe/Berlin", loc, err)
	}
	if cfg.Events.URL != "nats://nats:4222" {
		t.Errorf("Events.URL = %s, want nats://nats:4222", cfg.Events.URL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := writeAndLoad(t, "server:\n  port: 8081\n")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"host", cfg.Server.Host, "0.0.0.0"},
		{"read timeout", cfg.Server.ReadTimeout, 30 * time.Second},
		{"driver", cfg.Database.Driver, "sqlite"},
		{"dsn", cfg.Database.DSN, "x402dash.db"},
		{"log level", cfg.Logging.Level, "info"},
		{"log format", cfg.Logging.Format, "json"},
		{"metrics", cfg.Metrics.Enabled, true},
		{"openapi", cfg.OpenAPI.Enabled, true},
		{"seller path", cfg.Seller.APIPath, "/x402-dashboard/api"},
		{"tenant", cfg.Seller.DefaultTenantID, "default"},
		{"auto logging", cfg.Seller.AutoLogging, false},
		{"buyer enabled", cfg.Buyer.Enabled, true},
		{"buyer path", cfg.Buyer.APIPath, "/x402-buyer-dashboard/api"},
		{"buyer id", cfg.Buyer.DefaultBuyerID, "default"},
		{"events enabled", cfg.Events.Enabled, false},
		{"usage subject", cfg.Events.UsageSubject, "x402.usage.logged"},
		{"demo enabled", cfg.Demo.Enabled, true},
		{"demo count", cfg.Demo.Count, 100},
		{"demo days", cfg.Demo.Days, 30},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if loc, _ := cfg.Reporting.Location(); loc != time.UTC {
		t.Errorf("Location() = %v, want UTC", loc)
	}
}

func TestLoad_ExplicitFalseKept(t *testing.T) {
	cfg := writeAndLoad(t, `
metrics:
  enabled: false
buyer:
  enabled: false
demo:
  enabled: false
`)
	if cfg.Metrics.Enabled || cfg.Buyer.Enabled || cfg.Demo.Enabled {
		t.Errorf("explicit false overridden: metrics=%v buyer=%v demo=%v", cfg.Metrics.Enabled, cfg.Buyer.Enabled, cfg.Demo.Enabled)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_DASH_PASSWORD", "from-env")

	cfg := writeAndLoad(t, `
seller:
  security:
    enabled: true
    username: admin
    password: "${TEST_DASH_PASSWORD}"
`)
	if cfg.Seller.Security.Password != "from-env" {
		t.Errorf("Password = %s, want from-env", cfg.Seller.Security.Password)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad driver", "database:\n  driver: postgres\n", "database.driver"},
		{"bad level", "logging:\n  level: verbose\n", "logging.level"},
		{"bad format", "logging:\n  format: xml\n", "logging.format"},
		{"bad port", "server:\n  port: 70000\n", "server.port"},
		{"relative path", "seller:\n  api_path: dash\n", "seller.api_path"},
		{"same paths", "seller:\n  api_path: /dash\nbuyer:\n  api_path: /dash/\n", "must differ"},
		{"security without password", "buyer:\n  security:\n    enabled: true\n    username: a\n", "buyer.security.password"},
		{"security without user", "seller:\n  security:\n    enabled: true\n    password: p\n", "seller.security.username"},
		{"bad mapping", "buyer:\n  service_id_mapping: \"api.openai.com\"\n", "service_id_mapping"},
		{"bad timezone", "reporting:\n  timezone: Mars/Olympus\n", "reporting.timezone"},
		{"demo count", "demo:\n  count: 20000\n", "demo.count"},
		{"demo days", "demo:\n  days: 400\n", "demo.days"},
		{"invalid yaml", "server: [\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := writeAndLoadErr(t, tt.content)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("X402DASH_SERVER_PORT", "9999")
	t.Setenv("X402DASH_LOG_LEVEL", "debug")
	t.Setenv("X402DASH_DATABASE_DRIVER", "memory")
	t.Setenv("X402DASH_SELLER_AUTO_LOGGING", "yes")
	t.Setenv("X402DASH_BUYER_ID", "env-buyer")
	t.Setenv("X402DASH_TIMEZONE", "Asia/Tokyo")

	cfg := writeAndLoad(t, `
server:
  port: 8080
logging:
  level: warn
buyer:
  default_buyer_id: file-buyer
`)

	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("Driver = %s, want memory", cfg.Database.Driver)
	}
	if !cfg.Seller.AutoLogging {
		t.Error("AutoLogging = false, want true")
	}
	if cfg.Buyer.DefaultBuyerID != "env-buyer" {
		t.Errorf("DefaultBuyerID = %s, want env-buyer", cfg.Buyer.DefaultBuyerID)
	}
	if cfg.Reporting.Timezone != "Asia/Tokyo" {
		t.Errorf("Timezone = %s, want Asia/Tokyo", cfg.Reporting.Timezone)
	}
}

func TestEnvOverrides_DashboardCredentials(t *testing.T) {
	t.Setenv("X402DASH_DASHBOARD_USERNAME", "ops")
	t.Setenv("X402DASH_DASHBOARD_PASSWORD", "pw")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	for name, s := range map[string]config.SecurityConfig{"seller": cfg.Seller.Security, "buyer": cfg.Buyer.Security} {
		if !s.Enabled || s.Username != "ops" || s.Password != "pw" {
			t.Errorf("%s security = %+v, want enabled ops/pw", name, s)
		}
	}
}

func TestEnvOverrides_NATS(t *testing.T) {
	t.Setenv("X402DASH_NATS_URL", "nats://events:4222")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if !cfg.Events.Enabled || cfg.Events.URL != "nats://events:4222" {
		t.Errorf("Events = %+v, want enabled at nats://events:4222", cfg.Events)
	}
}

func TestEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("X402DASH_SERVER_PORT", "not-a-number")
	t.Setenv("X402DASH_SERVER_READ_TIMEOUT", "soon")

	cfg := writeAndLoad(t, "server:\n  port: 8181\n  read_timeout: 5s\n")
	if cfg.Server.Port != 8181 {
		t.Errorf("Port = %d, want 8181", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
}

func TestParseBoolValues(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{" on ", true},
		{"false", false},
		{"0", false},
		{"off", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("X402DASH_METRICS_ENABLED", tt.value)
			cfg, err := config.LoadFromEnv()
			if err != nil {
				t.Fatalf("LoadFromEnv() error = %v", err)
			}
			if cfg.Metrics.Enabled != tt.want {
				t.Errorf("Metrics.Enabled = %v, want %v", cfg.Metrics.Enabled, tt.want)
			}
		})
	}
}

func TestLoadWithFallback(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 7070\n")
	cfg, err := config.LoadWithFallback(path)
	if err != nil {
		t.Fatalf("LoadWithFallback(file) error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Port = %d, want 7070", cfg.Server.Port)
	}

	t.Setenv("X402DASH_SERVER_PORT", "7171")
	for _, p := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := config.LoadWithFallback(p)
		if err != nil {
			t.Fatalf("LoadWithFallback(%q) error = %v", p, err)
		}
		if cfg.Server.Port != 7171 {
			t.Errorf("LoadWithFallback(%q) Port = %d, want 7171", p, cfg.Server.Port)
		}
	}
}

func writeAndLoad(t *testing.T, content string) *config.Config {
	t.Helper()
	cfg, err := writeAndLoadErr(t, content)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return cfg
}

func writeAndLoadErr(t *testing.T, content string) (*config.Config, error) {
	t.Helper()
	return config.Load(writeConfig(t, content))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
