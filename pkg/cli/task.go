package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// ---------------------------------------------------------------------------
// Task execution commands
// ---------------------------------------------------------------------------

func newRunCmd(a *App) *cobra.Command {
	var inputsJSON string

	cmd := &cobra.Command{
		Use:   "run <task-id>",
		Short: "Execute a task on the workflow service",
		Long: "Execute a task by identifier. Inputs are validated against the task's\n" +
			"input schema before anything is sent.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := map[string]interface{}{}
			if inputsJSON != "" {
				if err := json.Unmarshal([]byte(inputsJSON), &inputs); err != nil {
					return fmt.Errorf("parse inputs: %w", err)
				}
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			result, err := a.Container.Facade.ExecuteTask(ctx, args[0], inputs)
			if err != nil {
				return err
			}
			renderTaskResult(a.Out, *result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputsJSON, "inputs", "i", "", "task inputs as a JSON object")
	return cmd
}

func newResultsCmd(a *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "results",
		Short: "List stored task results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			results, err := a.Container.Chat.AvailableTaskResults(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(a.Out, results)
			}

			if len(results) == 0 {
				fmt.Fprintln(a.Out, "no task results")
				return nil
			}
			for _, r := range results {
				renderTaskResultLine(a.Out, r)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}
