package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newEnrollCommand(verbose *bool) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "enroll --name NAME FILE...",
		Short: "Enroll a person from one or more photos",
		Long: `Enroll a person from one or more photos.

The first face of every photo is averaged into a single embedding. Photos
without a face are skipped. A name that is already stored keeps its first
embedding.

Examples:
  aivictl enroll --name "Ana Lima" ana1.jpg ana2.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			samples := make([][]byte, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				samples = append(samples, data)
			}

			ctx := cmd.Context()

			a, err := openApp(ctx, cmd.ErrOrStderr(), *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			outcome, err := a.enrollment.Enroll(ctx, name, samples)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s registered successfully (%d samples used, %d dropped)\n",
				outcome.Name, outcome.SamplesUsed, outcome.SamplesDropped)
			if !outcome.Persisted {
				fmt.Fprintf(out, "%s was already stored; the stored embedding is unchanged\n", outcome.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the person (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
