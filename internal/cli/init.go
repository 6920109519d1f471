package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize folio storage",
		Long:  "Create configuration and data directories, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Attach creates the data directory and the schema.
			backend, dataDir, err := a.attachBackend()
			if err != nil {
				return err
			}
			if err := backend.Detach(); err != nil {
				return sysError("finalize storage: %w", err)
			}

			out := struct {
				Config string `json:"config"`
				Data   string `json:"data"`
			}{filepath.Join(a.configDir, configFileExt), dataDir}
			msg := fmt.Sprintf("Folio initialized successfully\n  config: %s\n  data:   %s", out.Config, out.Data)
			return a.report(cmd.OutOrStdout(), out, msg)
		},
	}
}
