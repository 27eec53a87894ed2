package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PickerOption is one numbered choice.
type PickerOption struct {
	Value       string
	Label       string
	Description string
}

// Picker renders a numbered menu and resolves the user's answer. Reading the
// answer is left to the caller so the REPL's line editor keeps stdin.
type Picker struct {
	question string
	options  []PickerOption
	colored  bool

	numberStyle   lipgloss.Style
	optionStyle   lipgloss.Style
	dimStyle      lipgloss.Style
	questionStyle lipgloss.Style
}

func NewPicker(question string, options []PickerOption, colored bool) *Picker {
	return &Picker{
		question: question,
		options:  options,
		colored:  colored,

		numberStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		optionStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		dimStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		questionStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
	}
}

// Menu returns the question followed by one numbered line per option.
func (p *Picker) Menu() string {
	var b strings.Builder

	if p.colored {
		b.WriteString(p.questionStyle.Render(p.question))
	} else {
		b.WriteString(p.question)
	}
	b.WriteString("\n")

	for i, opt := range p.options {
		num := fmt.Sprintf("%2d)", i+1)
		line := opt.Label
		desc := opt.Description
		if p.colored {
			num = p.numberStyle.Render(num)
			line = p.optionStyle.Render(line)
			if desc != "" {
				desc = p.dimStyle.Render(desc)
			}
		}
		b.WriteString(num + " " + line)
		if desc != "" {
			b.WriteString("  " + desc)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Resolve maps an answer (a 1-based number or an option value) to a value.
func (p *Picker) Resolve(answer string) (string, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("no option selected")
	}

	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(p.options) {
			return "", fmt.Errorf("choose a number between 1 and %d", len(p.options))
		}
		return p.options[n-1].Value, nil
	}

	for _, opt := range p.options {
		if strings.EqualFold(opt.Value, answer) {
			return opt.Value, nil
		}
	}
	return "", fmt.Errorf("unknown option: %s", answer)
}
