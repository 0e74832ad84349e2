package main

import (
	"fmt"
	"log/slog"

	"github.com/promptlens/promptlens/internal/webserver"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var (
		port    int
		dataDir string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated datasets and experiments over HTTP",
		Long: `Serve the dashboard API on 127.0.0.1.

Reads the files written by "promptlens generate" from the data directory and
serves them read-only:

  GET  /api/health
  GET  /api/datasets?q=&status=
  GET  /api/datasets/{id}
  GET  /api/datasets/{id}/entries?offset=&limit=
  GET  /api/experiments?q=&status=
  GET  /api/experiments/{id}
  POST /api/evaluate
  GET  /metrics

Stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadProjectConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") {
				port = cfg.Server.Port
			}
			if !cmd.Flags().Changed("data-dir") {
				dataDir = cfg.Server.DataDir
			}

			srv, err := webserver.New(webserver.Config{
				Port:           port,
				DataDir:        dataDir,
				AllowedOrigins: origins,
				Logger:         slog.Default(),
			})
			if err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "promptlens API: http://127.0.0.1:%d/api/health\n", port)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config: 3000)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory of generated files (default from config: generated/)")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "Allow cross-origin requests from these origins")

	return cmd
}
