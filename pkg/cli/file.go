package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ---------------------------------------------------------------------------
// File commands
// ---------------------------------------------------------------------------

func newUploadCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a local file to the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			ref, err := a.Container.Facade.UploadFile(ctx, args[0], content)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "uploaded %s (%s, id %s)\n", ref.Filename, ref.Type, ref.ID)
			return nil
		},
	}
}

func newTranscribeCmd(a *App) *cobra.Command {
	var agentID, chatID string

	cmd := &cobra.Command{
		Use:   "transcribe <file-id>",
		Short: "Request a transcript for a stored file",
		Long: "Request a transcript for a stored file. When a transcript already\n" +
			"exists you are asked whether to generate a new one or keep it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			transcript, err := a.Container.Facade.RequestFileTranscript(ctx, args[0], agentID, chatID)
			if err != nil {
				return err
			}
			renderMessage(a.Out, *transcript)
			return nil
		},
	}
	cmd.Flags().StringVar(&agentID, "agent", "", "agent to pick the transcription model from")
	cmd.Flags().StringVar(&chatID, "chat", "", "chat whose agent picks the transcription model")
	return cmd
}
