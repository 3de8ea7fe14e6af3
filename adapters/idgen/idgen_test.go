package idgen_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/x402dash/x402dash/adapters/idgen"
)

func TestUUID_New(t *testing.T) {
	g := idgen.UUID{}

	id := g.New()
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("New() = %q is not a UUID: %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Errorf("version = %d, want 4", parsed.Version())
	}
	if g.New() == id {
		t.Error("consecutive ids should differ")
	}
}

func TestSequential(t *testing.T) {
	g := idgen.NewSequential("evt-")

	if got := g.New(); got != "evt-1" {
		t.Errorf("New() = %s, want evt-1", got)
	}
	if got := g.New(); got != "evt-2" {
		t.Errorf("New() = %s, want evt-2", got)
	}

	g.Reset()
	if got := g.New(); got != "evt-1" {
		t.Errorf("after Reset New() = %s, want evt-1", got)
	}
}

func TestSequential_Concurrent(t *testing.T) {
	g := idgen.NewSequential("")
	const n = 200

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := g.New()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("unique ids = %d, want %d", len(seen), n)
	}
}
