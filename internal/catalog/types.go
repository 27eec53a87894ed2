package catalog

import (
	"fmt"
	"time"
)

// Kind values for catalog entries.
const (
	KindExam     = "exam"
	KindDeadline = "deadline"
	KindClass    = "class"
	KindEvent    = "event"
)

// Kinds lists every accepted kind.
var Kinds = []string{KindExam, KindDeadline, KindClass, KindEvent}

// Entry is a named deadline shown by the countdown views.
type Entry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Code     string    `json:"code,omitempty"`
	Kind     string    `json:"kind"`
	Location string    `json:"location,omitempty"`
	Due      time.Time `json:"due"`
}

// ValidKind reports whether k is one of Kinds.
func ValidKind(k string) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Validate checks the fields required for an entry to be stored.
func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry id is required")
	}
	if e.Title == "" {
		return fmt.Errorf("entry %s: title is required", e.ID)
	}
	if !ValidKind(e.Kind) {
		return fmt.Errorf("entry %s: unknown kind %q (supported: %v)", e.ID, e.Kind, Kinds)
	}
	if e.Due.IsZero() {
		return fmt.Errorf("entry %s: due time is required", e.ID)
	}
	return nil
}
