package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/notexe/countdown/internal/catalog"
	"github.com/notexe/countdown/internal/config"
	"github.com/notexe/countdown/internal/countdown"
	"github.com/notexe/countdown/internal/ui"
)

type REPL struct {
	catalog   *catalog.Catalog
	config    *config.Config
	rl        *readline.Instance
	formatter *ui.Formatter
	out       io.Writer
	inPlace   bool
	mode      countdown.Mode
	clock     countdown.Clock

	// readLine reads one answer for prompts outside the main loop.
	readLine func(prompt string) (string, error)
}

func NewREPL(cat *catalog.Catalog, cfg *config.Config) (*REPL, error) {
	formatter := ui.NewFormatter(cfg.UI.ColoredOutput, ui.FormatterOptions{
		Labels:         cfg.Labels(),
		ExpiredLabel:   cfg.Countdown.ExpiredLabel,
		ShowTimestamps: cfg.UI.ShowTimestamps,
		Width:          ui.Width(os.Stdout, 80),
	})

	rl, err := setupReadline(formatter.FormatPrompt())
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	r := newREPL(cat, cfg, formatter, rl.Stdout(), ui.IsTerminal(os.Stdout), countdown.RealClock{})
	r.rl = rl
	r.readLine = r.promptLine
	return r, nil
}

func newREPL(cat *catalog.Catalog, cfg *config.Config, formatter *ui.Formatter, out io.Writer, inPlace bool, clock countdown.Clock) *REPL {
	return &REPL{
		catalog:   cat,
		config:    cfg,
		formatter: formatter,
		out:       out,
		inPlace:   inPlace,
		mode:      cfg.Mode(),
		clock:     clock,
	}
}

func (r *REPL) Start(ctx context.Context) error {
	defer r.rl.Close()

	r.displayWelcome(ctx)

	for {
		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		isCommand, command, args := r.parseCommand(input)
		if !isCommand {
			command, args = "/show", input
		}

		if err := r.handleCommand(ctx, command, args); err != nil {
			r.displayError(err)
		}

		if command == "/quit" || command == "/exit" || command == "/q" {
			return nil
		}
	}
}

func (r *REPL) Stop() {
	r.rl.Close()
}

func (r *REPL) now() time.Time {
	return r.clock.Now()
}

func (r *REPL) handleCommand(ctx context.Context, command, args string) error {
	switch command {
	case "/help", "/h":
		r.displayHelp()
		return nil

	case "/list", "/ls", "/l":
		return r.handleList(ctx, args)

	case "/next", "/n":
		return r.handleNext(ctx, args)

	case "/show", "/s":
		if args == "" {
			return fmt.Errorf("usage: /show <id>")
		}
		e, err := r.catalog.Get(ctx, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, r.formatter.FormatDetail(*e, r.now()))
		fmt.Fprintln(r.out)
		return nil

	case "/watch", "/w":
		return r.handleWatch(ctx, args)

	case "/calendar", "/cal":
		return r.handleCalendar(ctx)

	case "/mode", "/m":
		if args == "" {
			r.displayInfo(fmt.Sprintf("Current mode: %s", r.mode))
			return nil
		}
		mode, err := countdown.ParseMode(args)
		if err != nil {
			return err
		}
		r.mode = mode
		r.displaySystem(fmt.Sprintf("Watch mode set to %s.", mode))
		return nil

	case "/quit", "/exit", "/q":
		fmt.Fprintln(r.out, "\nGoodbye!")
		return nil

	default:
		return fmt.Errorf("unknown command: %s (type /help for available commands)", command)
	}
}

func (r *REPL) handleList(ctx context.Context, kind string) error {
	kind = strings.ToLower(kind)
	if kind != "" && !catalog.ValidKind(kind) {
		return fmt.Errorf("unknown kind: %s (available: %s)", kind, strings.Join(catalog.Kinds, ", "))
	}

	entries, err := r.catalog.List(ctx, kind)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out, r.formatter.FormatEntryList(entries, r.now()))
	fmt.Fprintln(r.out)
	return nil
}

func (r *REPL) handleNext(ctx context.Context, kind string) error {
	kind = strings.ToLower(kind)
	if kind != "" && !catalog.ValidKind(kind) {
		return fmt.Errorf("unknown kind: %s (available: %s)", kind, strings.Join(catalog.Kinds, ", "))
	}

	e, err := r.catalog.Next(ctx, kind, r.now())
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out, r.formatter.FormatEntryLine(*e, r.now()))
	fmt.Fprintln(r.out)
	return nil
}
