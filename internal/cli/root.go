// Package cli implements aivictl, the operator tool for the identity store.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the aivictl command tree
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "aivictl",
		Short: "Manage the AIVI identity memory",
		Long: `aivictl works on the same identity store as the AIVI API.

Configuration comes from the environment (and an optional .env file), exactly
like the server: STORAGE_DRIVER, SQLITE_PATH, DATABASE_URL, REDIS_URL,
KNOWN_FACES_DIR, PROVIDER_TYPE and friends.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newListCommand(&verbose),
		newEnrollCommand(&verbose),
		newRecognizeCommand(&verbose),
		newImportCommand(&verbose),
	)

	return root
}
