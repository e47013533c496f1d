package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vugu/qrouter/rgen"
)

func genCmd() *cobra.Command {
	var (
		packageName string
		recursive   bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "gen [dir...]",
		Short: "Generate routes from .vugu files",
		Long: `Generate a ` + rgen.OutputFileName + ` file in each directory with a
MakeRoutes function returning one route per .vugu file (index.vugu is "/").

With -r sub-directories are processed too.  A sub-directory containing
` + rgen.LayoutFileName + ` becomes a nested route rendered by its Layout component.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."} // default to current dir
			}
			if packageName != "" && len(args) > 1 {
				return errors.New("-p is only valid with a single directory, either don't use -p or only specify one dir")
			}

			for _, arg := range args {
				dir, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("converting %q to absolute path: %w", arg, err)
				}

				if !quiet {
					slog.Info("processing routes", "dir", arg)
				}

				err = rgen.New().
					SetDir(dir).
					SetPackageName(packageName).
					SetRecursive(recursive).
					Generate()
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&packageName, "package", "p", "", "The full package name to use.  If unspecified auto-detection will be attempted using go.mod")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Recursively process subdirectories")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print information upon error")

	return cmd
}

func manifestCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "manifest <routes.yaml>",
		Short: "Generate routes from a YAML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = filepath.Join(filepath.Dir(args[0]), "routes_qrgen.go")
			}
			if err := rgen.GenerateManifest(args[0], out); err != nil {
				return err
			}
			slog.Info("routes generated", "manifest", args[0], "out", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default routes_qrgen.go next to the manifest)")

	return cmd
}
