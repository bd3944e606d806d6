package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/atelier-ai/atelier/pkg/domain"
	"github.com/atelier-ai/atelier/pkg/domain/catalog"
	chatdomain "github.com/atelier-ai/atelier/pkg/domain/chat"
	taskdomain "github.com/atelier-ai/atelier/pkg/domain/task"
	"github.com/atelier-ai/atelier/pkg/notify"
)

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

var (
	styleKey   = lipgloss.NewStyle().Bold(true)
	styleFaint = lipgloss.NewStyle().Faint(true)
	styleGood  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleBad   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	roleStyles = map[domain.MessageRole]lipgloss.Style{
		domain.RoleUser:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		domain.RoleAssistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		domain.RoleSystem:    styleFaint,
		domain.RoleTool:      styleFaint,
	}
)

func writeJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// itemLabel picks a human-readable name for a record, falling back through
// the naming fields the collections use.
func itemLabel(it domain.Item) string {
	for _, key := range []string{"name", "task_name", "filename", "short_name", "model_name", "title"} {
		if s, ok := it[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func renderItemList(out io.Writer, c domain.Collection, items []domain.Item) {
	if len(items) == 0 {
		fmt.Fprintf(out, "no %s\n", c)
		return
	}
	fmt.Fprintf(out, "%d %s\n", len(items), c)
	for _, it := range items {
		line := "  " + it.ID()
		if label := itemLabel(it); label != "" {
			line += "  " + styleKey.Render(label)
		}
		if detail := collectionDetail(c, it); detail != "" {
			line += "  " + detail
		}
		fmt.Fprintln(out, line)
	}
}

// collectionDetail adds the per-collection column to a list line: model
// deployment and context size, API health, prompt kind.
func collectionDetail(c domain.Collection, it domain.Item) string {
	switch c {
	case domain.CollectionModels:
		m, err := domain.Decode[catalog.Model](it)
		if err != nil {
			return ""
		}
		return styleFaint.Render(fmt.Sprintf("%s, ctx %d", m.Type, m.ContextSize))
	case domain.CollectionAPIs:
		api, err := domain.Decode[catalog.API](it)
		if err != nil {
			return ""
		}
		health := string(api.Health)
		if health == "" {
			health = string(catalog.APIUnknownState)
		}
		if api.Health == catalog.APIHealthy {
			return styleGood.Render(health)
		}
		return styleBad.Render(health)
	case domain.CollectionPrompts:
		p, err := domain.Decode[catalog.Prompt](it)
		if err != nil || !p.IsTemplated {
			return ""
		}
		return styleFaint.Render("templated")
	default:
		return ""
	}
}

func renderItem(out io.Writer, it domain.Item) {
	keys := make([]string, 0, len(it))
	width := 0
	for k := range it {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(out, "%-*s  %s\n", width, styleKey.Render(k), renderValue(it[k]))
	}
}

// renderValue flattens one field: strings print raw, everything else as
// compact JSON.
func renderValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return styleFaint.Render("null")
	case string:
		return val
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

func renderMessage(out io.Writer, m chatdomain.Message) {
	style, ok := roleStyles[m.Role]
	if !ok {
		style = styleKey
	}

	line := fmt.Sprintf("%s %s", style.Render(string(m.Role)+":"), m.Content)
	if m.Step != "" {
		line += " " + styleFaint.Render("["+m.Step+"]")
	}
	fmt.Fprintln(out, line)
}

func renderTaskResultLine(out io.Writer, r taskdomain.Result) {
	status := styleBad.Render(string(r.Status))
	if r.Succeeded() {
		status = styleGood.Render(string(r.Status))
	}
	fmt.Fprintf(out, "%s  %s  %s (code %d)\n", r.ID, styleKey.Render(r.TaskName), status, r.ResultCode)
}

func renderTaskResult(out io.Writer, r taskdomain.Result) {
	renderTaskResultLine(out, r)
	if r.Outputs != "" {
		fmt.Fprintln(out, r.Outputs)
	}
	if r.Diagnostic != "" {
		fmt.Fprintln(out, styleFaint.Render(r.Diagnostic))
	}
}

func renderHealth(out io.Writer, report domain.HealthReport) {
	renderProbe(out, "database", report.Database)
	renderProbe(out, "workflow", report.Workflow)
}

func renderProbe(out io.Writer, name string, h domain.ComponentHealth) {
	if h.OK {
		fmt.Fprintf(out, "%-9s %s\n", name, styleGood.Render("ok"))
		return
	}
	fmt.Fprintf(out, "%-9s %s  %s\n", name, styleBad.Render("unreachable"), styleFaint.Render(h.Detail))
}

func renderNotices(out io.Writer, notices []notify.Notification) {
	if len(notices) == 0 {
		fmt.Fprintln(out, "no notifications yet")
		return
	}
	for i, n := range notices {
		line := fmt.Sprintf("%2d. [%s] %s", i+1, n.Severity, n.Message)
		if n.HasAction() {
			line += " " + styleFaint.Render("("+n.Action.Label+")")
		}
		fmt.Fprintln(out, line)
	}
}
