package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atelier-ai/atelier/pkg/domain"
)

// ---------------------------------------------------------------------------
// Collection CRUD commands
// ---------------------------------------------------------------------------

func newListCmd(a *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "list <collection>",
		Short:     "List every record in a collection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: collectionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCollection(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			items, err := a.Container.Facade.FetchAll(ctx, c)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(a.Out, items)
			}
			renderItemList(a.Out, c, items)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func newGetCmd(a *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCollection(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			item, err := a.Container.Facade.FetchItem(ctx, c, args[1])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(a.Out, item)
			}
			renderItem(a.Out, item)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func newCreateCmd(a *App) *cobra.Command {
	var data, file string

	cmd := &cobra.Command{
		Use:   "create <collection>",
		Short: "Create a record from a JSON payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCollection(args[0])
			if err != nil {
				return err
			}
			partial, err := readPayload(data, file)
			if err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			created, err := a.Container.Facade.CreateItem(ctx, c, partial)
			if err != nil {
				return err
			}
			renderItem(a.Out, created)
			return nil
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "record fields as a JSON object")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the JSON payload from a file")
	return cmd
}

func newUpdateCmd(a *App) *cobra.Command {
	var data, file string

	cmd := &cobra.Command{
		Use:   "update <collection> <id>",
		Short: "Apply a partial change to a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCollection(args[0])
			if err != nil {
				return err
			}
			partial, err := readPayload(data, file)
			if err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			updated, err := a.Container.Facade.UpdateItem(ctx, c, args[1], partial)
			if err != nil {
				return err
			}
			renderItem(a.Out, updated)
			return nil
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "changed fields as a JSON object")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the JSON payload from a file")
	return cmd
}

func newDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <id>",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCollection(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			// The outcome notification is the user-visible signal either way.
			a.Container.Facade.DeleteItem(ctx, c, args[1])
			return nil
		},
	}
}

// readPayload decodes the --data/--file JSON payload into an item. Exactly
// one source must be given.
func readPayload(data, file string) (domain.Item, error) {
	switch {
	case data != "" && file != "":
		return nil, fmt.Errorf("--data and --file are mutually exclusive")
	case data == "" && file == "":
		return nil, fmt.Errorf("a JSON payload is required (--data or --file)")
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		data = string(raw)
	}

	var item domain.Item
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	return item, nil
}
