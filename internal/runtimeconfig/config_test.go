package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-folio/internal/redirects"
	"github.com/goliatone/go-folio/internal/runtimeconfig"
	"github.com/goliatone/go-folio/internal/site"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_SentinelErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"content dir", func(c *runtimeconfig.Config) { c.Content.Dir = " " }, runtimeconfig.ErrContentDirRequired},
		{"output dir", func(c *runtimeconfig.Config) { c.Generator.OutputDir = "" }, runtimeconfig.ErrGeneratorOutputDirRequired},
		{"workers", func(c *runtimeconfig.Config) { c.Generator.Workers = -1 }, runtimeconfig.ErrGeneratorWorkersInvalid},
		{"provider missing", func(c *runtimeconfig.Config) { c.Logging.Provider = "" }, runtimeconfig.ErrLoggingProviderRequired},
		{"provider unknown", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"format", func(c *runtimeconfig.Config) {
			c.Logging.Provider = "gologger"
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
		{"email", func(c *runtimeconfig.Config) { c.Site.Email = "not-an-email" }, runtimeconfig.ErrInvalidValues},
		{"redirect status", func(c *runtimeconfig.Config) {
			c.Redirects = []redirects.Rule{{Source: "/a", Destination: "/b", Status: 200}}
		}, runtimeconfig.ErrInvalidValues},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_ReportsFieldPaths(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.Socials = []runtimeconfig.SocialConfig{{Name: "github", Href: "not a url"}}

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "site") {
		t.Fatalf("expected site error, got %v", err)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	contents := `
site:
  name: Example
  url: https://example.com/
  socials:
    - name: mastodon
      href: https://example.social/users/example
content:
  dir: content
generator:
  output_dir: public_html
  incremental: true
  workers: 2
logging:
  provider: gologger
  format: pretty
server:
  debounce: 500ms
redirects:
  - source: /old
    destination: /new
    status: 308
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Content.Dir != "content" || cfg.Generator.OutputDir != "public_html" || !cfg.Generator.Incremental {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if !cfg.Generator.GenerateSitemap || cfg.Generator.PublicDir != "public" {
		t.Fatalf("defaults lost: %+v", cfg.Generator)
	}
	if cfg.Server.Debounce != 500*time.Millisecond {
		t.Fatalf("expected 500ms debounce, got %s", cfg.Server.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	reg := site.Default().With(cfg.SiteOverrides())
	if reg.Site.Name != "Example" || reg.Site.URL != "https://example.com" {
		t.Fatalf("unexpected site overrides %+v", reg.Site)
	}
	if socials := reg.Socials(); len(socials) != 1 || socials[0].Name != "mastodon" {
		t.Fatalf("unexpected socials %+v", socials)
	}

	table, err := cfg.RedirectTable()
	if err != nil {
		t.Fatalf("RedirectTable() error: %v", err)
	}
	if rule, ok := table.Lookup("/old"); !ok || rule.Status != 308 {
		t.Fatalf("expected configured rule, got %+v %v", rule, ok)
	}
	if _, ok := table.Lookup("/blog/2024/12/02/constraint-solving-in-spreadsheets"); !ok {
		t.Fatalf("expected built-in rule to survive merge")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	if err := os.WriteFile(path, []byte("generator:\n  outputdir: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := runtimeconfig.Load(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := runtimeconfig.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit file")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		runtimeconfig.EnvBaseURL:    "https://preview.example.com",
		runtimeconfig.EnvOutputDir:  "out",
		runtimeconfig.EnvLogLevel:   " debug ",
		runtimeconfig.EnvContentDir: "",
	}
	cfg := runtimeconfig.ApplyEnv(runtimeconfig.DefaultConfig(), func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	})
	if cfg.Site.URL != "https://preview.example.com" || cfg.Generator.OutputDir != "out" || cfg.Logging.Level != "debug" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Content.Dir != runtimeconfig.DefaultConfig().Content.Dir {
		t.Fatalf("blank env value should keep default, got %q", cfg.Content.Dir)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	if err := os.WriteFile(file, []byte("FOLIO_TEST_DOTENV=loaded\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("FOLIO_TEST_DOTENV") })

	if err := runtimeconfig.LoadDotEnv(filepath.Join(dir, "missing.env"), file); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv("FOLIO_TEST_DOTENV"); got != "loaded" {
		t.Fatalf("expected variable from .env, got %q", got)
	}
}
