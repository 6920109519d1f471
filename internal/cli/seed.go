package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/folio/internal/auth"
	"github.com/mesh-intelligence/folio/internal/service"
)

func newSeedCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the fallback dataset into the database",
		Long: "Seed writes the fallback dataset into every content table when the\n" +
			"database holds no content. With --force existing content is replaced.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, _, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			svc, err := a.newService(backend, service.WithAuthorizer(auth.Allow))
			if err != nil {
				return err
			}
			seeded, err := svc.Seed(cmd.Context(), force)
			if err != nil {
				return sysError("seed: %w", err)
			}

			msg := "Content already present; use --force to replace it"
			if seeded {
				msg = "Seeded portfolio content"
			}
			out := struct {
				Seeded bool `json:"seeded"`
			}{seeded}
			return a.report(cmd.OutOrStdout(), out, msg)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace existing content")
	return cmd
}
