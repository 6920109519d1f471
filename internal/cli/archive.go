package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/folio/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every table to a directory of JSONL files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, _, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if err := backend.Export(cmd.Context(), dir); err != nil {
				return sysError("export: %w", err)
			}
			out := struct {
				Dir string `json:"dir"`
			}{dir}
			return a.report(cmd.OutOrStdout(), out, fmt.Sprintf("Exported to %s", dir))
		},
	}
	cmd.Flags().StringVar(&dir, "out", "", "destination directory")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace tables with the JSONL files in a directory",
		Long: "Import loads the files written by export in one transaction. Each table\n" +
			"with a file is replaced; malformed lines are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, _, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if err := backend.Import(cmd.Context(), dir); err != nil {
				if errors.Is(err, fs.ErrNotExist) || errors.Is(err, types.ErrCodecVersion) {
					return userError("import: %w", err)
				}
				return sysError("import: %w", err)
			}
			out := struct {
				Dir string `json:"dir"`
			}{dir}
			return a.report(cmd.OutOrStdout(), out, fmt.Sprintf("Imported from %s", dir))
		},
	}
	cmd.Flags().StringVar(&dir, "in", "", "source directory")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
