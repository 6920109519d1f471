package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the folio release, overridable at link time with
// -ldflags "-X github.com/mesh-intelligence/folio/internal/cli.Version=...".
var Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/folio"

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the folio version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := struct {
				Version string `json:"version"`
				Module  string `json:"module"`
			}{Version, modulePath}
			return a.report(cmd.OutOrStdout(), out, fmt.Sprintf("folio v%s\nmodule: %s", Version, modulePath))
		},
	}
}
