package format

import (
	"fmt"
	"strings"

	"auto-reference/core/autoref"
	"auto-reference/core/utils"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Formatter renders autoref values as text.
type Formatter struct {
	rich bool

	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	okStyle      lipgloss.Style
	nameStyle    lipgloss.Style
	symbolStyle  lipgloss.Style
	messageStyle lipgloss.Style
	headerStyle  lipgloss.Style
}

// New creates a formatter. With rich unset, every style is a no-op.
func New(rich bool) *Formatter {
	f := &Formatter{rich: rich}
	if !rich {
		return f
	}
	f.errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	f.warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	f.okStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	f.nameStyle = lipgloss.NewStyle().Bold(true)
	f.symbolStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	f.messageStyle = lipgloss.NewStyle().Italic(true)
	f.headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	return f
}

func (f *Formatter) render(style lipgloss.Style, text string) string {
	if !f.rich || text == "" {
		return text
	}
	return style.Render(text)
}

func (f *Formatter) severity(s autoref.Severity) string {
	if s == autoref.SeverityError {
		return f.render(f.errorStyle, "error")
	}
	return f.render(f.warningStyle, "warning")
}

// Item renders one diagnostic on a single line.
func (f *Formatter) Item(item autoref.LogItem) string {
	var b strings.Builder
	b.WriteString(f.severity(item.Severity))
	b.WriteString(": ")
	b.WriteString(f.render(f.nameStyle, item.Owner()))
	if item.Member != "" {
		b.WriteString(".")
		b.WriteString(f.render(f.nameStyle, item.Member))
	}
	if item.Annotation != "" {
		b.WriteString(" ")
		b.WriteString(f.render(f.symbolStyle, "["+item.Annotation+"]"))
	}
	b.WriteString(": ")
	b.WriteString(f.render(f.messageStyle, item.Message))
	if item.Node != "" {
		fmt.Fprintf(&b, " (node %s)", item.Node)
	}
	if len(item.Suggestions) > 0 {
		fmt.Fprintf(&b, "; did you mean %s?", strings.Join(item.Suggestions, ", "))
	}
	return b.String()
}

// Summary renders the status line of a report.
func (f *Formatter) Summary(r autoref.ReportInfo) string {
	style := f.okStyle
	switch {
	case r.Status.Has(autoref.StatusError), r.Status.Has(autoref.StatusUnsupported):
		style = f.errorStyle
	case r.Status.Has(autoref.StatusWarning):
		style = f.warningStyle
	}
	return f.render(style, r.Summary)
}

// Statistics renders the counts of a report.
func (f *Formatter) Statistics(s autoref.StatisticsInfo) string {
	return strings.Join([]string{
		utils.FormatCount(s.Types, "type"),
		utils.FormatCount(s.Fields, "field"),
		utils.FormatCount(s.Callbacks, "callback"),
		utils.FormatCount(s.Components, "component"),
		utils.FormatCount(s.Nodes, "node"),
		fmt.Sprintf("%d modified", s.Modified),
		utils.FormatCount(s.Errors, "error"),
		utils.FormatCount(s.Warnings, "warning"),
	}, ", ")
}

// Report renders a whole batch report: diagnostics table, statistics and summary.
func (f *Formatter) Report(r autoref.ReportInfo) string {
	var b strings.Builder
	if items := r.Items(); len(items) > 0 {
		b.WriteString(f.itemsTable(items))
		b.WriteString("\n")
	}
	b.WriteString(f.Statistics(r.Statistics))
	b.WriteString("\n")
	b.WriteString(f.Summary(r))
	return b.String()
}

func (f *Formatter) itemsTable(items []autoref.LogItem) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Status", "Package", "Type", "Target", "Annotation", "Description")
	for _, item := range items {
		description := item.Message
		if item.Node != "" {
			description += " (node " + item.Node + ")"
		}
		if len(item.Suggestions) > 0 {
			description += "; did you mean " + strings.Join(item.Suggestions, ", ") + "?"
		}
		t.Row(f.severity(item.Severity), item.Package, item.Type, item.Member, item.Annotation, description)
	}
	if f.rich {
		t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return f.headerStyle
			}
			return lipgloss.NewStyle()
		})
	}
	return t.String()
}

// Types renders the metadata of component types.
func (f *Formatter) Types(summaries []autoref.TypeSummary) string {
	var b strings.Builder
	for i, ts := range summaries {
		if i > 0 {
			b.WriteString("\n")
		}
		name := ts.Type
		if ts.Package != "" {
			name = ts.Package + "." + ts.Type
		}
		fmt.Fprintf(&b, "%s (%s, %s)\n", f.render(f.nameStyle, name),
			utils.FormatCount(len(ts.Fields), "field"), utils.FormatCount(len(ts.Callbacks), "callback"))

		for _, fs := range ts.Fields {
			target := fs.Target
			if fs.Sequence {
				target = "[]" + target
			}
			fmt.Fprintf(&b, "  %s %s %s mode=%s", fs.Name, target, f.render(f.symbolStyle, fs.Strategy.String()), fs.Mode)
			if fs.NameFilter != "" {
				fmt.Fprintf(&b, " name=%s", fs.NameFilter)
			}
			if fs.PathFilter != "" {
				fmt.Fprintf(&b, " path=%s", fs.PathFilter)
			}
			if fs.Optional {
				b.WriteString(" optional")
			}
			b.WriteString("\n")
		}
		for _, cb := range ts.Callbacks {
			fmt.Fprintf(&b, "  %s()\n", cb)
		}
		for _, tr := range ts.Tracked {
			fmt.Fprintf(&b, "  %s %s\n", tr, f.render(f.symbolStyle, "sync"))
		}
		for _, item := range ts.Items {
			b.WriteString("  ")
			b.WriteString(f.Item(item))
			b.WriteString("\n")
		}
	}
	return b.String()
}
