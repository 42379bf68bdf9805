package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/aivi/internal/seed"
)

var errNoName = errors.New("file name is empty once the extension is removed")

func newImportCommand(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "import DIR",
		Short: "Enroll every image of a directory under its file name",
		Long: `Enroll every image of a directory, one identity per file, named after the
file without its extension (the same naming rule as the seed directory).

Files that are not images are ignored. Images without a face, and files such
as ".png" whose name is empty, are counted as failures and the import continues.

Examples:
  aivictl import ./photos`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("read directory: %w", err)
			}

			var files []string
			for _, entry := range entries {
				if entry.IsDir() || !seed.IsImageFile(entry.Name()) {
					continue
				}
				files = append(files, filepath.Join(dir, entry.Name()))
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "no images found")
				return nil
			}

			ctx := cmd.Context()

			a, err := openApp(ctx, cmd.ErrOrStderr(), *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("Enrolling"),
				progressbar.OptionShowCount(),
				progressbar.OptionShowElapsedTimeOnFinish(),
			)

			var stored, existing, failed int
			var failures []error

			for _, path := range files {
				if err := ctx.Err(); err != nil {
					return err
				}

				name := seed.NameFromPath(path)
				if strings.TrimSpace(name) == "" {
					failed++
					failures = append(failures, fmt.Errorf("%s: %w", filepath.Base(path), errNoName))
					_ = bar.Add(1)
					continue
				}

				data, err := os.ReadFile(path)
				if err != nil {
					failed++
					failures = append(failures, fmt.Errorf("%s: %w", filepath.Base(path), err))
					_ = bar.Add(1)
					continue
				}

				outcome, err := a.enrollment.Enroll(ctx, name, [][]byte{data})
				switch {
				case err != nil:
					failed++
					failures = append(failures, fmt.Errorf("%s: %w", filepath.Base(path), err))
				case outcome.Persisted:
					stored++
				default:
					existing++
				}
				_ = bar.Add(1)
			}
			_ = bar.Finish()
			fmt.Fprintln(cmd.ErrOrStderr())

			fmt.Fprintf(out, "Completed: %d stored, %d already present, %d failed\n", stored, existing, failed)
			for _, f := range failures {
				fmt.Fprintf(out, "  %v\n", f)
			}

			if failed == len(files) {
				return errors.New("no image could be enrolled")
			}
			return nil
		},
	}
}
