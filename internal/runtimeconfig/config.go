package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-folio/internal/redirects"
	"github.com/goliatone/go-folio/internal/site"
)

var ErrContentDirRequired = errors.New("folio config: content directory is required")
var ErrGeneratorOutputDirRequired = errors.New("folio config: generator output directory is required")
var ErrGeneratorWorkersInvalid = errors.New("folio config: generator workers must be zero or positive")
var ErrLoggingProviderRequired = errors.New("folio config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("folio config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("folio config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("folio config: logging format is invalid")

// ErrInvalidValues wraps field-level failures reported by ozzo-validation.
var ErrInvalidValues = errors.New("folio config: invalid values")

// Config aggregates every setting of a folio site build. Fields use plain
// types so they map one to one onto the YAML config file.
type Config struct {
	Site      SiteConfig       `yaml:"site"`
	Content   ContentConfig    `yaml:"content"`
	Markdown  MarkdownConfig   `yaml:"markdown"`
	Generator GeneratorConfig  `yaml:"generator"`
	Logging   LoggingConfig    `yaml:"logging"`
	Commands  CommandsConfig   `yaml:"commands"`
	Server    ServerConfig     `yaml:"server"`
	Workspace WorkspaceConfig  `yaml:"workspace"`
	Redirects []redirects.Rule `yaml:"redirects"`
}

// SiteConfig overrides the built-in site metadata. Empty values keep the
// defaults.
type SiteConfig struct {
	Name    string         `yaml:"name"`
	Email   string         `yaml:"email"`
	URL     string         `yaml:"url"`
	Socials []SocialConfig `yaml:"socials"`
}

// SocialConfig mirrors site.Social.
type SocialConfig struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
}

// ContentConfig locates the content collections.
type ContentConfig struct {
	Dir      string   `yaml:"dir"`
	Patterns []string `yaml:"patterns"`
}

// MarkdownConfig captures parser behaviour for content bodies.
type MarkdownConfig struct {
	Parser MarkdownParserConfig `yaml:"parser"`
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// GeneratorConfig captures behaviour for the static site build.
type GeneratorConfig struct {
	OutputDir         string `yaml:"output_dir"`
	PublicDir         string `yaml:"public_dir"`
	TemplatesDir      string `yaml:"templates_dir"`
	CleanBuild        bool   `yaml:"clean_build"`
	Incremental       bool   `yaml:"incremental"`
	CopyAssets        bool   `yaml:"copy_assets"`
	GenerateSitemap   bool   `yaml:"generate_sitemap"`
	GenerateRobots    bool   `yaml:"generate_robots"`
	GenerateFeeds     bool   `yaml:"generate_feeds"`
	GenerateRedirects bool   `yaml:"generate_redirects"`
	Workers           int    `yaml:"workers"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// CommandsConfig captures command-layer behaviour.
type CommandsConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures the development server.
type ServerConfig struct {
	Addr     string        `yaml:"addr"`
	Debounce time.Duration `yaml:"debounce"`
}

// WorkspaceConfig points at a build-tool workspace for project directory
// resolution. An empty LibsDir defers to nx.json.
type WorkspaceConfig struct {
	Root    string `yaml:"root"`
	LibsDir string `yaml:"libs_dir"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			URL: site.DefaultURL,
		},
		Content: ContentConfig{
			Dir:      "src/content",
			Patterns: []string{"*.md", "*.mdx"},
		},
		Markdown: MarkdownConfig{
			Parser: MarkdownParserConfig{
				Extensions: []string{"gfm", "linkify", "tasklist"},
			},
		},
		Generator: GeneratorConfig{
			OutputDir:         "dist",
			PublicDir:         "public",
			CleanBuild:        true,
			CopyAssets:        true,
			GenerateSitemap:   true,
			GenerateRobots:    true,
			GenerateFeeds:     true,
			GenerateRedirects: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Commands: CommandsConfig{
			Timeout: time.Minute,
		},
		Server: ServerConfig{
			Addr:     "127.0.0.1:4321",
			Debounce: 250 * time.Millisecond,
		},
		Workspace: WorkspaceConfig{
			Root: ".",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrGeneratorOutputDirRequired
	}
	if cfg.Generator.Workers < 0 {
		return ErrGeneratorWorkersInvalid
	}
	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}

	errs := validation.Errors{}
	if err := cfg.Site.Validate(); err != nil {
		errs["site"] = err
	}
	for i, rule := range cfg.Redirects {
		if err := rule.Validate(); err != nil {
			errs[fmt.Sprintf("redirects.%d", i)] = err
		}
	}
	if err := errs.Filter(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValues, err)
	}
	return nil
}

func (s SiteConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Email, is.EmailFormat),
		validation.Field(&s.URL, is.URL),
		validation.Field(&s.Socials),
	)
}

func (s SocialConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Href, validation.Required, is.URL),
	)
}

// SiteOverrides converts the site section into registry overrides.
func (cfg Config) SiteOverrides() site.Overrides {
	overrides := site.Overrides{
		Name:  strings.TrimSpace(cfg.Site.Name),
		Email: strings.TrimSpace(cfg.Site.Email),
		URL:   strings.TrimSpace(cfg.Site.URL),
	}
	for _, social := range cfg.Site.Socials {
		overrides.Socials = append(overrides.Socials, site.Social{Name: social.Name, Href: social.Href})
	}
	return overrides
}

// RedirectTable merges the configured rules into the built-in table.
func (cfg Config) RedirectTable() (*redirects.Table, error) {
	return redirects.Default().Merge(cfg.Redirects...)
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
