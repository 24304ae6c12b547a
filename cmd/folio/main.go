// Command folio validates, builds and serves a folio site.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	folio "github.com/goliatone/go-folio"
	"github.com/goliatone/go-folio/internal/runtimeconfig"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// settings holds the persistent flags shared by every subcommand.
type settings struct {
	configPath string
	envFiles   []string
	contentDir string
	outputDir  string
	baseURL    string
	logLevel   string

	cfg folio.Config
}

// moduleBuilder is swapped in tests.
var moduleBuilder = func(cfg folio.Config) (*folio.Module, error) {
	return folio.New(cfg)
}

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	s := &settings{}

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Content toolkit for a personal site",
		Long:          "folio validates Markdown collections (blog, work, projects, talks) against their schemas and renders them into a static site.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.load()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&s.configPath, "config", "c", "", "Path to the YAML config file (default folio.yaml when present)")
	flags.StringSliceVar(&s.envFiles, "env-file", []string{".env"}, ".env files loaded before reading the config")
	flags.StringVar(&s.contentDir, "content", "", "Content directory holding one folder per collection")
	flags.StringVarP(&s.outputDir, "output", "o", "", "Output directory for the built site")
	flags.StringVar(&s.baseURL, "base-url", "", "Canonical site URL")
	flags.StringVar(&s.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newValidateCmd(s),
		newBuildCmd(s),
		newCleanCmd(s),
		newSchemasCmd(s),
		newProjectDirCmd(s),
		newRedirectsCmd(s),
		newServeCmd(s),
	)
	return root
}

// load resolves configuration in order: defaults, config file, environment
// and finally flags.
func (s *settings) load() error {
	if err := runtimeconfig.LoadDotEnv(s.envFiles...); err != nil {
		return err
	}
	cfg, err := folio.LoadConfig(s.configPath, os.LookupEnv)
	if err != nil {
		return err
	}
	override := func(value string, target *string) {
		if v := strings.TrimSpace(value); v != "" {
			*target = v
		}
	}
	override(s.contentDir, &cfg.Content.Dir)
	override(s.outputDir, &cfg.Generator.OutputDir)
	override(s.baseURL, &cfg.Site.URL)
	override(s.logLevel, &cfg.Logging.Level)
	s.cfg = cfg
	return nil
}

func (s *settings) module() (*folio.Module, error) {
	return moduleBuilder(s.cfg)
}
