package config_test

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/x402dash/x402dash/config"
)

func validConfig() string {
	return `
seller:
  default_tenant_id: "acme"
reporting:
  timezone: "UTC"
`
}

func TestHolder_Get(t *testing.T) {
	h, err := config.NewHolder(writeConfig(t, validConfig()), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	got := h.Get()
	if got == nil {
		t.Fatal("Get returned nil")
	}
	if got.Seller.DefaultTenantID != "acme" {
		t.Errorf("DefaultTenantID = %s, want acme", got.Seller.DefaultTenantID)
	}
}

func TestHolder_ReloadNotifies(t *testing.T) {
	path := writeConfig(t, validConfig())
	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	var mu sync.Mutex
	var received *config.Config
	h.OnChange(func(cfg *config.Config) {
		mu.Lock()
		received = cfg
		mu.Unlock()
	})

	newContent := `
seller:
  default_tenant_id: "globex"
reporting:
  timezone: "America/New_York"
`
	if err := os.WriteFile(path, []byte(newContent), 0644); err != nil {
		t.Fatalf("write new config: %v", err)
	}
	if err := h.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	if got := h.Get().Reporting.Timezone; got != "America/New_York" {
		t.Errorf("Timezone = %s, want America/New_York", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if received == nil || received.Seller.DefaultTenantID != "globex" {
		t.Errorf("callback received %+v, want tenant globex", received)
	}
}

func TestHolder_ReloadInvalidConfig(t *testing.T) {
	path := writeConfig(t, validConfig())
	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0644); err != nil {
		t.Fatalf("write invalid config: %v", err)
	}
	if err := h.Reload(); err == nil {
		t.Error("Reload should fail for invalid config")
	}

	if got := h.Get().Seller.DefaultTenantID; got != "acme" {
		t.Errorf("should keep old config, got DefaultTenantID = %s", got)
	}
}

func TestHolder_WatchFile(t *testing.T) {
	path := writeConfig(t, validConfig())
	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	changed := make(chan struct{}, 8)
	h.OnChange(func(*config.Config) { changed <- struct{}{} })

	if err := h.WatchFile(); err != nil {
		t.Fatalf("WatchFile error: %v", err)
	}

	if err := os.WriteFile(path, []byte("seller:\n  default_tenant_id: \"watched\"\n"), 0644); err != nil {
		t.Fatalf("write new config: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("file watcher did not trigger reload")
	}
	if got := h.Get().Seller.DefaultTenantID; got != "watched" {
		t.Errorf("after file watch, DefaultTenantID = %s, want watched", got)
	}
}

func TestHolder_StopTwice(t *testing.T) {
	h, err := config.NewHolder(writeConfig(t, validConfig()), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	h.WatchSignals()
	h.Stop()
	h.Stop()
}

func TestHolder_ConcurrentAccess(t *testing.T) {
	h, err := config.NewHolder(writeConfig(t, validConfig()), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if h.Get() == nil {
					t.Error("concurrent Get returned nil")
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Reload()
		}()
	}
	wg.Wait()
}

func TestReloadableFields(t *testing.T) {
	reloadable := make(map[string]bool)
	for _, f := range config.ReloadableFields() {
		reloadable[f] = true
	}
	for _, want := range []string{"logging.level", "reporting.timezone", "seller.auto_logging", "buyer.service_id_mapping"} {
		if !reloadable[want] {
			t.Errorf("%s not in ReloadableFields", want)
		}
	}
	for _, f := range config.NonReloadableFields() {
		if reloadable[f] {
			t.Errorf("%s is listed as both reloadable and non-reloadable", f)
		}
	}
}
