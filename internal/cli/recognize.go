package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRecognizeCommand(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "recognize FILE",
		Short: "Recognize the people in a photo",
		Long: `Recognize the people in a photo against seeds and stored identities.

Prints one line per detected face, in detection order, with the distance to
the nearest known identity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			ctx := cmd.Context()

			a, err := openApp(ctx, cmd.ErrOrStderr(), *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			results, err := a.recognition.Analyze(ctx, data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "no faces detected")
				return nil
			}
			for _, r := range results {
				if r.Distance < 0 {
					fmt.Fprintf(out, "%s\n", r.Name)
					continue
				}
				fmt.Fprintf(out, "%s\t%.4f\n", r.Name, r.Distance)
			}
			return nil
		},
	}
}
