package main

import (
	"fmt"

	"github.com/promptlens/promptlens/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "validate <file> [file ...]",
		Short: "Check project, dataset and experiment files against their schemas",
		Long: `Check files against the embedded JSON Schemas.

YAML files are validated as .promptlens.yaml. JSON files are detected as a
dataset or an experiment (or an array of either) from their fields; use
--kind when detection is not possible.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := validation.ParseKind(kindFlag)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			invalid := 0
			for _, path := range args {
				used, errs, err := validation.ValidateFile(path, kind)
				if err != nil {
					return err
				}
				if len(errs) == 0 {
					fmt.Fprintf(w, "✓ %s (%s)\n", path, used)
					continue
				}
				invalid++
				fmt.Fprintf(w, "✗ %s (%s)\n", path, used)
				for _, e := range errs {
					fmt.Fprintf(w, "    %s\n", e)
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d files failed validation", invalid, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "auto", "File kind: auto, config, dataset or experiment")

	return cmd
}
