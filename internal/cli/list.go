package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(verbose *bool) *cobra.Command {
	var memoryOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored identities",
		Long: `List the identities held in the durable repository, in insertion order.

With --memory, list the in-memory index instead (seed images first, then the
repository), with the origin of each entry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx, cmd.ErrOrStderr(), *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			out := cmd.OutOrStdout()

			if memoryOnly {
				entries := a.index.Entries()
				for _, e := range entries {
					fmt.Fprintf(out, "%s\t%s\n", e.Name, e.Origin)
				}
				fmt.Fprintf(out, "%d identities in memory\n", len(entries))
				return nil
			}

			stored, err := a.repo.ListAll(ctx)
			if err != nil {
				return fmt.Errorf("list identities: %w", err)
			}
			for _, identity := range stored {
				fmt.Fprintln(out, identity.Name)
			}
			fmt.Fprintf(out, "%d identities stored\n", len(stored))
			return nil
		},
	}

	cmd.Flags().BoolVar(&memoryOnly, "memory", false, "List the in-memory index, seeds included")

	return cmd
}
