package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benaskins/optui/internal/config"
	"github.com/benaskins/optui/internal/op"
)

func withConfig(t *testing.T, c *config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func TestResolveCachePathPrecedence(t *testing.T) {
	withConfig(t, &config.Config{CachePath: "/from/config.json"})

	got, err := resolveCachePath([]string{"/from/arg.json"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "/from/arg.json" {
		t.Errorf("positional arg should win, got %q", got)
	}

	got, err = resolveCachePath(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "/from/config.json" {
		t.Errorf("config should be used without arg, got %q", got)
	}
}

func TestResolveCachePathDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)
	t.Setenv("HOME", home)
	withConfig(t, &config.Config{})

	got, err := resolveCachePath(nil)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "items.json" || filepath.Base(filepath.Dir(got)) != "op-tui" {
		t.Errorf("unexpected default path %q", got)
	}
	if !strings.HasPrefix(got, home) {
		t.Errorf("default path %q not under %q", got, home)
	}

	info, err := os.Stat(filepath.Dir(got))
	if err != nil {
		t.Fatalf("cache dir not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0700 {
		t.Errorf("cache dir perm = %o, want 0700", perm)
	}
}

func TestResolveOpPath(t *testing.T) {
	prev := opPath
	t.Cleanup(func() { opPath = prev })

	opPath = ""
	withConfig(t, &config.Config{})
	if got := resolveOpPath(); got != op.DefaultBin {
		t.Errorf("got %q, want %q", got, op.DefaultBin)
	}

	cfg.OpPath = "/opt/op"
	if got := resolveOpPath(); got != "/opt/op" {
		t.Errorf("got %q, want config value", got)
	}

	opPath = "/usr/local/bin/op"
	if got := resolveOpPath(); got != "/usr/local/bin/op" {
		t.Errorf("flag should win, got %q", got)
	}
}

func TestOpenAuditDisabledByDefault(t *testing.T) {
	prev := auditPath
	t.Cleanup(func() { auditPath = prev })
	auditPath = ""
	withConfig(t, &config.Config{})

	l, err := openAudit()
	if err != nil {
		t.Fatal(err)
	}
	if l != nil {
		t.Error("expected no audit logger without a configured path")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "", "info", "debug"); got != "info" {
		t.Errorf("firstNonEmpty = %q, want info", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("firstNonEmpty = %q, want empty", got)
	}
}
