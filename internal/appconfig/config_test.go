package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/treykane/hkctl/internal/util"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "hkctl")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Host != util.DefaultHost {
		t.Fatalf("unexpected host: %s", cfg.Host)
	}
	if cfg.Port != 55123 {
		t.Fatalf("unexpected port: %d", cfg.Port)
	}
	if cfg.Home != "" {
		t.Fatalf("unexpected home: %s", cfg.Home)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	writeConfig(t, strings.Join([]string{
		"host: 10.0.0.7",
		"port: 6000",
		"home: Cabin",
		"",
	}, "\n"))
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Host != "10.0.0.7" || cfg.Port != 6000 || cfg.Home != "Cabin" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_NormalizesEmptyValues(t *testing.T) {
	writeConfig(t, "host: \"  \"\nport: 0\n")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Host != util.DefaultHost {
		t.Fatalf("expected normalized host, got %q", cfg.Host)
	}
	if cfg.Port != util.DefaultPort {
		t.Fatalf("expected default port, got %d", cfg.Port)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	writeConfig(t, "host: 10.0.0.7\nport: 6000\n")
	t.Setenv("HKCTL_HOST", "192.168.1.20")
	t.Setenv("HKCTL_PORT", "7000")
	t.Setenv("HKCTL_HOME", "Beach House")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Host != "192.168.1.20" || cfg.Port != 7000 || cfg.Home != "Beach House" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_RejectsBadInput(t *testing.T) {
	writeConfig(t, "port: [1, 2]\n")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error for malformed port")
	}

}

func TestResolvePort_FlagWinsOverBadEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HKCTL_PORT", "not-a-port")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := cfg.ResolvePort(nil); err == nil {
		t.Fatal("expected error for malformed HKCTL_PORT without --port")
	}
	flag := uint16(6000)
	port, err := cfg.ResolvePort(&flag)
	if err != nil || port != 6000 {
		t.Fatalf("expected flag port 6000, got %d (%v)", port, err)
	}
}

func TestResolvePort_FallsBackToConfigured(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HKCTL_PORT", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	port, err := cfg.ResolvePort(nil)
	if err != nil || port != 55123 {
		t.Fatalf("expected default port 55123, got %d (%v)", port, err)
	}
}
