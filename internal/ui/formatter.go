package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/notexe/countdown/internal/calendar"
	"github.com/notexe/countdown/internal/catalog"
	"github.com/notexe/countdown/internal/countdown"
)

var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SystemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Medium gray
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	ExpiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	CellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")). // Soft blue border
			Width(6).
			Align(lipgloss.Center)

	TodayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("81")).
			Bold(true)
)

// kindColors mirrors the calendar dot colors per deadline kind.
var kindColors = map[string]lipgloss.Color{
	catalog.KindExam:     lipgloss.Color("203"), // red
	catalog.KindClass:    lipgloss.Color("75"),  // blue
	catalog.KindDeadline: lipgloss.Color("214"), // amber
	catalog.KindEvent:    lipgloss.Color("141"), // purple
}

// dueLayout is how absolute due times are printed next to countdowns.
const dueLayout = "Mon 02 Jan 2006 15:04"

type Formatter struct {
	colored        bool
	labels         countdown.Labels
	expiredLabel   string
	showTimestamps bool
	width          int
}

// FormatterOptions carries the presentation settings from config.
type FormatterOptions struct {
	Labels         countdown.Labels
	ExpiredLabel   string
	ShowTimestamps bool
	Width          int // wrap width for detail cards; 0 picks 80
}

func NewFormatter(colored bool, opts FormatterOptions) *Formatter {
	if opts.Labels == (countdown.Labels{}) {
		opts.Labels = countdown.DefaultLabels
	}
	if opts.ExpiredLabel == "" {
		opts.ExpiredLabel = "time is up"
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	return &Formatter{
		colored:        colored,
		labels:         opts.Labels,
		expiredLabel:   opts.ExpiredLabel,
		showTimestamps: opts.ShowTimestamps,
		width:          opts.Width,
	}
}

func (f *Formatter) render(style lipgloss.Style, s string) string {
	if f.colored {
		return style.Render(s)
	}
	return s
}

// FormatRemaining renders r in the given mode; expired values always use the
// expired indicator.
func (f *Formatter) FormatRemaining(r countdown.RemainingTime, mode countdown.Mode) string {
	if r.Expired {
		return f.FormatExpired()
	}
	if mode == countdown.ModeFull {
		return f.FormatFull(r)
	}
	return f.FormatCompact(r)
}

func (f *Formatter) FormatExpired() string {
	return f.render(ExpiredStyle, f.expiredLabel)
}

// FormatCompact renders D:HH:MM:SS with dimmed separators.
func (f *Formatter) FormatCompact(r countdown.RemainingTime) string {
	if !f.colored {
		return countdown.Compact(r)
	}
	sep := DimStyle.Render(":")
	parts := strings.Split(countdown.Compact(r), ":")
	for i, p := range parts {
		parts[i] = ValueStyle.Render(p)
	}
	return strings.Join(parts, sep)
}

// FormatFull renders four labeled cells side by side.
func (f *Formatter) FormatFull(r countdown.RemainingTime) string {
	cells := countdown.Cells(r, f.labels)

	if !f.colored {
		values := make([]string, len(cells))
		labels := make([]string, len(cells))
		for i, c := range cells {
			w := max(len(c.Value), len(c.Label))
			values[i] = fmt.Sprintf("%-*s", w, c.Value)
			labels[i] = fmt.Sprintf("%-*s", w, c.Label)
		}
		return strings.Join(values, " : ") + "\n" + strings.Join(labels, "   ")
	}

	blocks := make([]string, 0, 2*len(cells)-1)
	for i, c := range cells {
		cell := lipgloss.JoinVertical(lipgloss.Center,
			CellStyle.Render(ValueStyle.Render(c.Value)),
			DimStyle.Render(c.Label),
		)
		blocks = append(blocks, cell)
		if i < len(cells)-1 {
			blocks = append(blocks, DimStyle.Render("\n :"))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (f *Formatter) formatKind(kind string) string {
	tag := "[" + kind + "]"
	if !f.colored {
		return tag
	}
	color, ok := kindColors[kind]
	if !ok {
		return DimStyle.Render(tag)
	}
	return lipgloss.NewStyle().Foreground(color).Render(tag)
}

// FormatEntryLine renders one catalog row with its compact countdown.
func (f *Formatter) FormatEntryLine(e catalog.Entry, now time.Time) string {
	r := countdown.Compute(e.Due, now)

	parts := []string{
		f.formatKind(e.Kind),
		f.render(HeaderStyle, e.ID),
		e.Title,
		f.FormatRemaining(r, countdown.ModeCompact),
	}
	if f.showTimestamps {
		parts = append(parts, f.render(DimStyle, "("+e.Due.In(now.Location()).Format(dueLayout)+")"))
	}
	return strings.Join(parts, "  ")
}

// FormatEntryList renders the catalog listing.
func (f *Formatter) FormatEntryList(entries []catalog.Entry, now time.Time) string {
	if len(entries) == 0 {
		return f.FormatInfo("No deadlines found.")
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, f.FormatEntryLine(e, now))
	}
	return strings.Join(lines, "\n")
}

// FormatDetail renders an entry as a markdown card followed by its full countdown.
func (f *Formatter) FormatDetail(e catalog.Entry, now time.Time) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", e.Title)
	fmt.Fprintf(&md, "| | |\n|---|---|\n")
	fmt.Fprintf(&md, "| ID | %s |\n", e.ID)
	if e.Code != "" {
		fmt.Fprintf(&md, "| Code | %s |\n", e.Code)
	}
	fmt.Fprintf(&md, "| Kind | %s |\n", e.Kind)
	if e.Location != "" {
		fmt.Fprintf(&md, "| Location | %s |\n", e.Location)
	}
	fmt.Fprintf(&md, "| Due | %s |\n", e.Due.In(now.Location()).Format(dueLayout))

	card := f.renderMarkdown(md.String())
	r := countdown.Compute(e.Due, now)
	return card + "\n\n" + f.FormatRemaining(r, countdown.ModeFull)
}

func (f *Formatter) renderMarkdown(md string) string {
	style := glamour.WithStandardStyle("notty")
	if f.colored {
		style = glamour.WithAutoStyle()
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(f.width))
	if err != nil {
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(rendered)
}

// FormatCalendar renders a month grid; days carrying a deadline show the
// first letter of its kind and today is highlighted.
func (f *Formatter) FormatCalendar(g calendar.Grid) string {
	var b strings.Builder

	title := fmt.Sprintf("%s %d", g.Month, g.Year)
	b.WriteString(f.render(HeaderStyle, title))
	b.WriteString("\n")

	heads := make([]string, 0, 7)
	for _, wd := range g.Weekdays() {
		heads = append(heads, fmt.Sprintf("%-4s", wd.String()[:2]))
	}
	b.WriteString(f.render(DimStyle, strings.TrimRight(strings.Join(heads, ""), " ")))

	for _, week := range g.Weeks {
		b.WriteString("\n")
		cells := make([]string, 0, 7)
		for _, c := range week {
			cells = append(cells, f.formatDay(c))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, ""), " "))
	}

	return b.String()
}

func (f *Formatter) formatDay(c calendar.Cell) string {
	if c.Day == 0 {
		return "    "
	}

	day := fmt.Sprintf("%2d", c.Day)
	mark := " "
	if c.Kind != "" {
		mark = c.Kind[:1]
	}

	if f.colored {
		if c.Today {
			day = TodayStyle.Render(day)
		}
		if color, ok := kindColors[c.Kind]; ok {
			mark = lipgloss.NewStyle().Foreground(color).Render(mark)
		}
	} else if c.Today {
		mark = "*"
	}

	return day + mark + " "
}

func (f *Formatter) FormatError(err error) string {
	return f.render(ErrorStyle, "Error: ") + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	return f.render(InfoStyle, info)
}

func (f *Formatter) FormatSystem(msg string) string {
	return f.render(SystemStyle, msg)
}

func (f *Formatter) FormatStatus(msg string) string {
	return f.render(StatusStyle, msg)
}

// FormatWelcome shows the banner and, when known, the next upcoming deadline.
func (f *Formatter) FormatWelcome(next *catalog.Entry, now time.Time) string {
	lines := []string{"", f.render(HeaderStyle, "Countdown")}
	if next != nil {
		r := countdown.Compute(next.Due, now)
		lines = append(lines, f.render(DimStyle, "Next: ")+next.Title+"  "+f.FormatRemaining(r, countdown.ModeCompact))
	}
	lines = append(lines, f.render(DimStyle, "Type /help for commands"), "")
	return strings.Join(lines, "\n") + "\n"
}

func (f *Formatter) FormatHelp() string {
	cmds := [][2]string{
		{"/list [kind]", "List deadlines (exam, deadline, class, event)"},
		{"/next [kind]", "Show the next upcoming deadline"},
		{"/show <id>", "Show deadline details"},
		{"/watch [id] [mode]", "Live countdown (compact|full), Ctrl+C to stop"},
		{"/calendar", "Show this month with deadlines marked"},
		{"/mode compact|full", "Set the default watch mode"},
		{"/help", "Show this help"},
		{"/quit", "Exit"},
	}

	lines := []string{"", f.render(HeaderStyle, "Commands"), ""}
	for _, c := range cmds {
		lines = append(lines, fmt.Sprintf("  %s %s", f.render(ValueStyle, fmt.Sprintf("%-20s", c[0])), c[1]))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n") + "\n"
}

// FormatPrompt returns the input prompt.
func (f *Formatter) FormatPrompt() string {
	return f.render(lipgloss.NewStyle().Foreground(lipgloss.Color("62")), "countdown") +
		f.render(lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true), " > ")
}
