package folio

import "github.com/goliatone/go-folio/internal/runtimeconfig"

var (
	ErrContentDirRequired         = runtimeconfig.ErrContentDirRequired
	ErrGeneratorOutputDirRequired = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrGeneratorWorkersInvalid    = runtimeconfig.ErrGeneratorWorkersInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
	ErrInvalidValues              = runtimeconfig.ErrInvalidValues
)

type (
	Config               = runtimeconfig.Config
	SiteConfig           = runtimeconfig.SiteConfig
	SocialConfig         = runtimeconfig.SocialConfig
	ContentConfig        = runtimeconfig.ContentConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	GeneratorConfig      = runtimeconfig.GeneratorConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	CommandsConfig       = runtimeconfig.CommandsConfig
	ServerConfig         = runtimeconfig.ServerConfig
	WorkspaceConfig      = runtimeconfig.WorkspaceConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads path (or folio.yaml when empty) over the defaults and
// applies FOLIO_* environment overrides.
func LoadConfig(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		return Config{}, err
	}
	if lookup != nil {
		cfg = runtimeconfig.ApplyEnv(cfg, lookup)
	}
	return cfg, nil
}
