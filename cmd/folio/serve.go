package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	foliohttp "github.com/goliatone/go-folio/internal/http"
)

func newServeCmd(s *settings) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the site, serve it and rebuild on content changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				s.cfg.Server.Addr = addr
			}
			module, err := s.module()
			if err != nil {
				return err
			}
			cfg := module.Config()
			logger := module.Logger("folio.server")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server, err := foliohttp.New(foliohttp.Config{
				Addr:        cfg.Server.Addr,
				Files:       os.DirFS(cfg.Generator.OutputDir),
				Redirects:   module.Redirects(),
				Collections: module.Collections(),
				Generator:   module.Generator(),
				Logger:      logger,
			})
			if err != nil {
				return err
			}
			if _, err := server.Rebuild(ctx); err != nil {
				return fmt.Errorf("initial build: %w", err)
			}

			watcher, err := foliohttp.NewWatcher(func(ctx context.Context) error {
				_, err := server.Rebuild(ctx)
				return err
			}, cfg.Server.Debounce, logger, cfg.Content.Dir, cfg.Generator.PublicDir, cfg.Generator.TemplatesDir)
			if err != nil {
				return err
			}
			go func() {
				if err := watcher.Run(ctx); err != nil {
					logger.Error("watcher.stopped", "error", err)
				}
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "serving %s on http://%s\n", cfg.Generator.OutputDir, cfg.Server.Addr)
			return server.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:4321)")
	return cmd
}
