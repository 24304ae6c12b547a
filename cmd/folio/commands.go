package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newValidateCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every content document against its collection schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := s.module()
			if err != nil {
				return err
			}
			summary, err := module.ValidateContent(cmd.Context())
			if err != nil {
				return err
			}

			names := make([]string, 0, len(summary.Collections))
			for name := range summary.Collections {
				names = append(names, name)
			}
			sort.Strings(names)
			parts := make([]string, len(names))
			for i, name := range names {
				parts[i] = fmt.Sprintf("%s=%d", name, summary.Collections[name])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d entries valid (%s), %d drafts\n", summary.Total(), strings.Join(parts, " "), summary.Drafts)
			for _, skipped := range summary.Skipped {
				fmt.Fprintf(out, "skipped %s (no collection)\n", skipped)
			}
			return nil
		},
	}
}

func newBuildCmd(s *settings) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the site into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := s.module()
			if err != nil {
				return err
			}
			result, err := module.BuildSite(cmd.Context(), dryRun)
			if err != nil {
				return err
			}
			verb := "built"
			if result.DryRun {
				verb = "rendered (dry run)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d pages (%d unchanged), %d assets, %d artifacts in %s [build %s]\n",
				verb, result.Pages, result.PagesSkipped, result.Assets, len(result.Artifacts),
				result.Duration.Round(time.Millisecond), result.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render without writing files")
	return cmd
}

func newCleanCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove everything from the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := s.module()
			if err != nil {
				return err
			}
			if err := module.CleanSite(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleaned %s\n", s.cfg.Generator.OutputDir)
			return nil
		},
	}
}

func newSchemasCmd(s *settings) *cobra.Command {
	var (
		outDir string
		names  []string
	)
	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "Export collection schemas as JSON Schema files for editors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := s.module()
			if err != nil {
				return err
			}
			files, err := module.ExportSchemas(cmd.Context(), outDir, names...)
			if err != nil {
				return err
			}
			for _, file := range files {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "schemas", "Directory receiving <collection>.schema.json files")
	cmd.Flags().StringSliceVar(&names, "collection", nil, "Collections to export (default all)")
	return cmd
}

func newProjectDirCmd(s *settings) *cobra.Command {
	var root, libsDir string
	cmd := &cobra.Command{
		Use:   "project-dir [project]",
		Short: "Print the source directory of a workspace project",
		Long:  "Resolves <root>/<libsDir>/<basename(project)>. libsDir comes from --libs-dir, then nx.json workspaceLayout.libsDir, then \"libs\". Prints nothing without a project name.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("root") {
				s.cfg.Workspace.Root = root
			}
			if cmd.Flags().Changed("libs-dir") {
				s.cfg.Workspace.LibsDir = libsDir
			}
			module, err := s.module()
			if err != nil {
				return err
			}

			var project *string
			if len(args) == 1 {
				project = &args[0]
			}
			resolution, err := module.ResolveProjectDir(cmd.Context(), project)
			if err != nil {
				return err
			}
			if resolution.Found {
				fmt.Fprintln(cmd.OutOrStdout(), resolution.Dir)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "Workspace root")
	cmd.Flags().StringVar(&libsDir, "libs-dir", "", "Libraries folder, overriding nx.json")
	return cmd
}

func newRedirectsCmd(s *settings) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "redirects",
		Short: "Print the redirect table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := s.module()
			if err != nil {
				return err
			}
			table := module.Redirects()
			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "text":
				for _, rule := range table.Rules() {
					fmt.Fprintf(out, "%s -> %s (%d)\n", rule.Source, rule.Destination, rule.Status)
				}
			case "host":
				_, err = out.Write(table.HostFile())
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				err = enc.Encode(table.Rules())
			default:
				return fmt.Errorf("unknown format %q (want text, host or json)", format)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, host (_redirects file) or json")
	return cmd
}
