package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atelier-ai/atelier/pkg/confirm"
)

// ---------------------------------------------------------------------------
// Maintenance commands
// ---------------------------------------------------------------------------

func newStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Probe both backend services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			report := a.Container.Facade.Health(ctx)
			renderHealth(a.Out, report)
			if !report.Healthy() {
				return fmt.Errorf("one or more services are unreachable")
			}
			return nil
		},
	}
}

func newPurgeCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Destroy and re-seed the remote database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := confirm.NewRequest(
				"Purge database",
				"This destroys every record on the backend and re-seeds it. There is no undo.",
				"Purge", "Cancel",
			)
			confirmed, err := a.Container.Confirmer.Confirm(cmd.Context(), req)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(a.Out, "purge aborted")
				return nil
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()
			return a.Container.Facade.PurgeAndReinitializeDatabase(ctx)
		},
	}
}
