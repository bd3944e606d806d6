package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/atelier-ai/atelier/pkg/domain"
	chatdomain "github.com/atelier-ai/atelier/pkg/domain/chat"
	"github.com/atelier-ai/atelier/pkg/notify"
)

// ---------------------------------------------------------------------------
// Interactive chat session
// ---------------------------------------------------------------------------

func newChatCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [chat-id]",
		Short: "Interactive chat session",
		Long: "Open an interactive session. Plain lines are sent as user messages;\n" +
			"lines starting with ':' are commands (:help lists them).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return a.runChat(cmd.Context(), id)
		},
	}
}

// chatSession is the REPL state: the line editor, how much of the message
// history is already on screen, and the last rendered notices for :view.
type chatSession struct {
	app     *App
	rl      *readline.Instance
	printed int
	notices []notify.Notification
}

func (a *App) runChat(ctx context.Context, chatID string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "atelier> ",
		HistoryFile:     filepath.Join(os.TempDir(), "atelier_chat_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer rl.Close()

	s := &chatSession{app: a, rl: rl}

	// Faint activity feed: every bus event leaves a one-line trace, so
	// remote changes made from this session stay visible.
	unsubscribe := a.Container.EventBus.SubscribeAll(func(e domain.Event) {
		fmt.Fprintln(a.Out, styleFaint.Render("• "+string(e.EventTopic())))
	})
	defer unsubscribe()

	if chatID != "" {
		s.open(ctx, chatID)
	} else {
		fmt.Fprintln(a.Out, ":list shows chats, :open <id> selects one, :help lists commands")
	}

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil { // io.EOF
			return nil
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, ":"):
			if quit := s.command(ctx, line); quit {
				return nil
			}
		default:
			s.send(ctx, line)
		}
	}
}

// open selects a chat and renders its tail.
func (s *chatSession) open(ctx context.Context, id string) {
	ctrl := s.app.Container.Chat
	out := s.app.Out

	ctrl.SelectChat(ctx, id)
	current := ctrl.CurrentChat()
	if current == nil || current.ID != id {
		fmt.Fprintf(out, "could not open chat %s\n", id)
		return
	}

	s.rl.SetPrompt(current.Name + "> ")
	fmt.Fprintf(out, "chat %s — agent %s, %d messages, %d functions\n",
		current.Name, current.Agent.Name, len(current.Messages), len(current.Functions))

	// Show the last few turns; the rest stays in the backend.
	s.printed = 0
	if tail := len(current.Messages) - 10; tail > 0 {
		fmt.Fprintln(out, styleFaint.Render(fmt.Sprintf("(%d earlier messages not shown)", tail)))
		s.printed = tail
	}
	s.printNew()
}

// send performs one conversational turn and renders what the backend added.
func (s *chatSession) send(ctx context.Context, content string) {
	ctrl := s.app.Container.Chat
	if ctrl.SelectedChatID() == "" {
		fmt.Fprintln(s.app.Out, "no chat selected — use :open <id>")
		return
	}

	// Skip echoing the user's own line back.
	s.printed = len(ctrl.Messages()) + 1
	ctrl.SendMessage(ctx, ctrl.SelectedChatID(), chatdomain.NewUserMessage(content))
	s.printNew()
}

// printNew renders messages that arrived since the last render.
func (s *chatSession) printNew() {
	msgs := s.app.Container.Chat.Messages()
	if s.printed > len(msgs) {
		s.printed = len(msgs)
		return
	}
	for _, m := range msgs[s.printed:] {
		renderMessage(s.app.Out, m)
	}
	s.printed = len(msgs)
}

// command dispatches one ':' line. It returns true when the session ends.
func (s *chatSession) command(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]
	ctrl := s.app.Container.Chat
	out := s.app.Out

	switch name {
	case ":quit", ":q", ":exit":
		return true

	case ":help", ":h":
		s.printHelp()

	case ":list":
		items, err := s.app.Container.Facade.FetchAll(ctx, domain.CollectionChats)
		if err != nil {
			fmt.Fprintf(out, "list chats: %v\n", err)
			break
		}
		renderItemList(out, domain.CollectionChats, items)

	case ":open":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: :open <chat-id>")
			break
		}
		s.open(ctx, args[0])

	case ":send":
		content := strings.TrimSpace(strings.TrimPrefix(line, ":send"))
		if content == "" {
			fmt.Fprintln(out, "usage: :send <message>")
			break
		}
		s.send(ctx, content)

	case ":regen":
		if ctrl.SelectedChatID() == "" {
			fmt.Fprintln(out, "no chat selected — use :open <id>")
			break
		}
		s.printed = len(chatdomain.TrimTrailingNonUser(ctrl.Messages()))
		ctrl.RegenerateResponse(ctx)
		s.printNew()

	case ":attach":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: :attach <task-id>")
			break
		}
		ctrl.AddTaskToChat(ctx, args[0])
		if ctrl.IsTaskInChat(args[0]) {
			fmt.Fprintf(out, "task %s attached\n", args[0])
		} else {
			fmt.Fprintf(out, "could not attach task %s\n", args[0])
		}

	case ":tasks":
		tasks, err := ctrl.AvailableTasks(ctx)
		if err != nil {
			fmt.Fprintf(out, "list tasks: %v\n", err)
			break
		}
		if len(tasks) == 0 {
			fmt.Fprintln(out, "no tasks defined")
			break
		}
		for _, t := range tasks {
			marker := " "
			if ctrl.IsTaskInChat(t.ID) {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s  %s  %s\n", marker, t.ID, styleKey.Render(t.Name), t.Description)
		}

	case ":results":
		results, err := ctrl.AvailableTaskResults(ctx)
		if err != nil {
			fmt.Fprintf(out, "list task results: %v\n", err)
			break
		}
		if len(results) == 0 {
			fmt.Fprintln(out, "no task results")
			break
		}
		for _, r := range results {
			renderTaskResultLine(out, r)
		}

	case ":agent":
		ag := ctrl.ChatAgent()
		if ag.IsZero() {
			fmt.Fprintln(out, "no chat selected")
			break
		}
		fmt.Fprintf(out, "%s (chat model %s)\n", styleKey.Render(ag.Name), ag.ChatModel())

	case ":notices":
		s.notices = s.app.Container.Notifications.Recent(10)
		renderNotices(out, s.notices)

	case ":view":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: :view <notice-number> (after :notices)")
			break
		}
		s.invokeNotice(args[0])

	default:
		fmt.Fprintf(out, "unknown command %s (:help lists commands)\n", name)
	}
	return false
}

// invokeNotice triggers the action attached to a notice listed by :notices.
func (s *chatSession) invokeNotice(arg string) {
	out := s.app.Out
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil || n < 1 || n > len(s.notices) {
		fmt.Fprintln(out, "no such notice — run :notices first")
		return
	}

	notice := s.notices[n-1]
	if !notice.HasAction() {
		fmt.Fprintln(out, "that notice has no action")
		return
	}
	notice.Action.Invoke()
}

func (s *chatSession) printHelp() {
	help := [][2]string{
		{":list", "list chats"},
		{":open <id>", "select a chat"},
		{":send <msg>", "send a message (plain lines work too)"},
		{":regen", "regenerate the last response"},
		{":attach <task-id>", "attach a task to this chat"},
		{":tasks", "list tasks (* marks attached)"},
		{":results", "list task results"},
		{":agent", "show this chat's agent"},
		{":notices", "show recent notifications"},
		{":view <n>", "invoke the action of notice n"},
		{":quit", "leave the session"},
	}
	for _, h := range help {
		fmt.Fprintf(s.app.Out, "  %-20s %s\n", h[0], h[1])
	}
}
