package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/folio/internal/content"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "show [section]",
		Short:     "Print the public portfolio view as JSON",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: content.Sections,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, _, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			svc, err := a.newService(backend)
			if err != nil {
				return err
			}
			p := svc.GetPortfolioData(cmd.Context())
			if len(args) == 0 {
				return printJSON(cmd.OutOrStdout(), p)
			}

			section, ok := p.Section(args[0])
			if !ok {
				return userError("unknown section %q (valid: %s)", args[0], strings.Join(content.Sections, ", "))
			}
			return printJSON(cmd.OutOrStdout(), section)
		},
	}
}
