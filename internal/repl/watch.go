package repl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/notexe/countdown/internal/calendar"
	"github.com/notexe/countdown/internal/catalog"
	"github.com/notexe/countdown/internal/countdown"
	"github.com/notexe/countdown/internal/ui"
)

// handleWatch runs a live countdown until the deadline passes or the user
// interrupts it with Ctrl+C.
func (r *REPL) handleWatch(ctx context.Context, args string) error {
	var entry *catalog.Entry
	id := ""
	mode := r.mode
	for _, field := range strings.Fields(args) {
		// A catalog id wins over a mode name, so an entry called "full" stays watchable.
		if entry == nil {
			e, err := r.catalog.Get(ctx, field)
			if err == nil {
				entry, id = e, field
				continue
			}
			if !errors.Is(err, catalog.ErrNotFound) {
				return err
			}
		}
		if m, err := countdown.ParseMode(field); err == nil {
			mode = m
			continue
		}
		if id != "" {
			return fmt.Errorf("usage: /watch [id] [compact|full]")
		}
		id = field
	}

	if entry == nil {
		if id != "" {
			return fmt.Errorf("%w: %s", catalog.ErrNotFound, id)
		}
		e, err := r.pickEntry(ctx)
		if err != nil {
			return err
		}
		entry = e
	}

	return r.watch(ctx, *entry, mode)
}

func (r *REPL) watch(ctx context.Context, e catalog.Entry, mode countdown.Mode) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Fprintln(r.out, r.formatter.FormatStatus(fmt.Sprintf("Watching %s (%s). Ctrl+C to stop.", e.Title, e.ID)))

	display := ui.NewStatusDisplay(r.out, r.inPlace)
	tk := countdown.New(e.Due,
		countdown.WithClock(r.clock),
		countdown.WithInterval(r.config.Interval()),
		countdown.WithStopOnExpiry(),
	)

	err := tk.Run(ctx, func(rt countdown.RemainingTime) {
		display.Update(r.formatter.FormatRemaining(rt, mode))
	})
	display.Done()
	if err != nil {
		return err
	}

	if tk.Current().Expired {
		r.displaySystem(fmt.Sprintf("%s has passed.", e.Title))
	} else {
		r.displaySystem("Stopped watching.")
	}
	return nil
}

func (r *REPL) pickEntry(ctx context.Context) (*catalog.Entry, error) {
	entries, err := r.catalog.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, catalog.ErrNotFound
	}

	now := r.now()
	options := make([]ui.PickerOption, 0, len(entries))
	for _, e := range entries {
		options = append(options, ui.PickerOption{
			Value:       e.ID,
			Label:       e.Title,
			Description: r.formatter.FormatRemaining(countdown.Compute(e.Due, now), countdown.ModeCompact),
		})
	}

	picker := ui.NewPicker("Which deadline?", options, r.config.UI.ColoredOutput)
	fmt.Fprint(r.out, picker.Menu())

	answer, err := r.readLine("select > ")
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	id, err := picker.Resolve(answer)
	if err != nil {
		return nil, err
	}
	return r.catalog.Get(ctx, id)
}

func (r *REPL) handleCalendar(ctx context.Context) error {
	now := r.now()

	entries, err := r.catalog.InMonth(ctx, now.Year(), now.Month(), now.Location())
	if err != nil {
		return err
	}

	marks := make([]calendar.Mark, 0, len(entries))
	for _, e := range entries {
		marks = append(marks, calendar.Mark{At: e.Due, Kind: e.Kind})
	}

	g := calendar.Month(now.Year(), now.Month(), now, calendar.ParseWeekStart(r.config.UI.WeekStart), marks)
	fmt.Fprintln(r.out, r.formatter.FormatCalendar(g))
	fmt.Fprintln(r.out)

	if len(entries) > 0 {
		fmt.Fprintln(r.out, r.formatter.FormatEntryList(entries, now))
		fmt.Fprintln(r.out)
	}
	return nil
}
