package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeRoutesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRoutesFile(t *testing.T) {
	t.Setenv("SWAP_BOT_TOKEN", "swap-secret")

	path := writeRoutesFile(t, `
routes:
  - name: swap
    path: /api/webhook_swap
    token_env: SWAP_BOT_TOKEN
`)

	routes, err := LoadRoutesFile(path)
	if err != nil {
		t.Fatalf("LoadRoutesFile() failed: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(routes))
	}

	swap := routes[0]
	if swap.Name != "swap" || swap.Path != "/api/webhook_swap" {
		t.Errorf("unexpected route: %+v", swap)
	}
	if swap.Token != "swap-secret" {
		t.Errorf("token not resolved from environment: %q", swap.Token)
	}
	if swap.SecondaryToken != "" {
		t.Errorf("unexpected secondary token: %q", swap.SecondaryToken)
	}
}

func TestLoadRoutesFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRoutesFile(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrRoutesNotFound) {
			t.Fatalf("want ErrRoutesNotFound, got %v", err)
		}
	})

	t.Run("broken yaml", func(t *testing.T) {
		path := writeRoutesFile(t, "routes: [")
		_, err := LoadRoutesFile(path)
		if !errors.Is(err, ErrRoutesParsing) {
			t.Fatalf("want ErrRoutesParsing, got %v", err)
		}
	})

	t.Run("route without name", func(t *testing.T) {
		path := writeRoutesFile(t, "routes:\n  - path: /api/x\n")
		if _, err := LoadRoutesFile(path); !errors.Is(err, ErrRoutesParsing) {
			t.Fatalf("want ErrRoutesParsing, got %v", err)
		}
	})

	t.Run("relative path", func(t *testing.T) {
		path := writeRoutesFile(t, "routes:\n  - name: x\n    path: api/x\n")
		if _, err := LoadRoutesFile(path); !errors.Is(err, ErrRoutesParsing) {
			t.Fatalf("want ErrRoutesParsing, got %v", err)
		}
	})
}
