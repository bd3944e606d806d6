// Package cli implements the atelier command tree: collection CRUD, task
// execution, file upload and transcription, maintenance, and the interactive
// chat session. Commands talk to the application container; rendering stays
// in this package.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/atelier-ai/atelier/pkg/app"
	"github.com/atelier-ai/atelier/pkg/config"
	"github.com/atelier-ai/atelier/pkg/confirm"
	"github.com/atelier-ai/atelier/pkg/domain"
	"github.com/atelier-ai/atelier/pkg/infrastructure/backend"
	"github.com/atelier-ai/atelier/pkg/infrastructure/eventbus"
	"github.com/atelier-ai/atelier/pkg/notify"
)

// App carries the wired dependencies every command uses. It is built once in
// the root command's PersistentPreRunE, after flags are parsed.
type App struct {
	Config    *config.Config
	Container *app.Container
	Logger    *slog.Logger
	Out       io.Writer

	configPath string
	yes        bool
}

// NewRootCommand builds the atelier command tree.
func NewRootCommand() *cobra.Command {
	a := &App{Out: os.Stdout}

	root := &cobra.Command{
		Use:   "atelier",
		Short: "Terminal client for the Atelier workflow platform",
		Long: "Atelier manages chats, agents, models, prompts, tasks, files and API\n" +
			"credentials on a remote workflow platform. Records live on the backend;\n" +
			"this client binds terminal interactions to them.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.Container != nil {
				a.Container.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a config file (default: atelier.yaml, ~/.atelier/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.yes, "yes", "y", false, "answer every confirmation prompt with yes")

	root.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newRunCmd(a),
		newResultsCmd(a),
		newUploadCmd(a),
		newTranscribeCmd(a),
		newChatCmd(a),
		newStatusCmd(a),
		newPurgeCmd(a),
	)
	return root
}

// initialize resolves configuration and wires the application container.
func (a *App) initialize() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.Config = cfg

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	a.Logger = logger

	var confirmer confirm.Confirmer = confirm.NewTerminal()
	if a.yes || cfg.AutoConfirm {
		confirmer = confirm.AutoApprove{}
	}

	center := notify.NewCenter()
	center.AttachSink(notify.NewConsoleSink(a.Out))

	client := backend.New(backend.Options{
		DatabaseURL: cfg.DatabaseURL,
		WorkflowURL: cfg.WorkflowURL,
		Token:       cfg.Token,
		Timeout:     cfg.RequestTimeout,
	}, logger)

	a.Container = app.NewContainer(eventbus.New(), client, center, confirmer, logger)
	a.Container.Facade.SetViewFunc(a.viewItem)
	return nil
}

// viewItem backs the "View" action on success notifications: it fetches the
// record and renders it.
func (a *App) viewItem(c domain.Collection, id string) {
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.RequestTimeout)
	defer cancel()

	item, err := a.Container.Facade.FetchItem(ctx, c, id)
	if err != nil {
		fmt.Fprintf(a.Out, "could not load %s %s: %v\n", c.Singular(), id, err)
		return
	}
	renderItem(a.Out, item)
}

// requestContext derives the per-call context for one command invocation.
func (a *App) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	timeout := a.Config.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(parent, timeout)
}

// collectionNames lists valid collection arguments for completion.
func collectionNames() []string {
	all := domain.AllCollections()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return names
}
