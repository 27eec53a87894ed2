package countdown

import (
	"fmt"
	"strings"
)

// Mode selects how a live countdown is presented.
type Mode string

const (
	ModeCompact Mode = "compact"
	ModeFull    Mode = "full"
)

// ParseMode converts a config or command value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeCompact:
		return ModeCompact, nil
	case ModeFull:
		return ModeFull, nil
	default:
		return "", fmt.Errorf("unknown countdown mode: %q (supported: %s, %s)", s, ModeCompact, ModeFull)
	}
}

// Compact renders D:HH:MM:SS. Days are not padded.
func Compact(r RemainingTime) string {
	return fmt.Sprintf("%d:%02d:%02d:%02d", r.Days, r.Hours, r.Minutes, r.Seconds)
}

// Labels names the four cells of the full presentation.
type Labels struct {
	Days    string
	Hours   string
	Minutes string
	Seconds string
}

// DefaultLabels are used when no labels are configured.
var DefaultLabels = Labels{Days: "days", Hours: "hours", Minutes: "minutes", Seconds: "seconds"}

// Cell is one labeled value of the full presentation.
type Cell struct {
	Value string
	Label string
}

// Cells returns the days/hours/minutes/seconds cells, each value padded to two digits.
func Cells(r RemainingTime, labels Labels) []Cell {
	return []Cell{
		{Value: fmt.Sprintf("%02d", r.Days), Label: labels.Days},
		{Value: fmt.Sprintf("%02d", r.Hours), Label: labels.Hours},
		{Value: fmt.Sprintf("%02d", r.Minutes), Label: labels.Minutes},
		{Value: fmt.Sprintf("%02d", r.Seconds), Label: labels.Seconds},
	}
}
