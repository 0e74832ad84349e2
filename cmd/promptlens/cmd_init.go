package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/promptlens/promptlens/internal/projectconfig"
	"github.com/promptlens/promptlens/internal/synth"
	"github.com/promptlens/promptlens/internal/wizard"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var (
		dir   string
		yes   bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .promptlens.yaml project file",
		Long: `Create a .promptlens.yaml project file.

Asks for the class labels, generator seed and size, output directory,
confidence function and server port. With --yes the defaults are written
without prompting: the six patient-message intents, seed 42, 1000 entries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := filepath.Join(dir, projectconfig.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}

			spec := initDefaults()
			if !yes {
				answered, err := wizard.RunInitWizard(cmd.InOrStdin(), cmd.OutOrStdout(), *spec)
				if err != nil {
					return err
				}
				spec = answered
			}

			content, err := wizard.RenderConfig(spec)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Next: promptlens generate && promptlens serve")
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "Directory to create the project file in")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Write defaults without prompting")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing project file")

	return cmd
}

func initDefaults() *wizard.InitSpec {
	cfg := projectconfig.New()
	return &wizard.InitSpec{
		Classes:        synth.Intents.Labels(),
		Seed:           *cfg.Generate.Seed,
		Entries:        cfg.Generate.Entries,
		OutputDir:      cfg.Generate.OutputDir,
		ConfidenceType: cfg.Evaluate.Confidence.Type,
		Port:           cfg.Server.Port,
	}
}
