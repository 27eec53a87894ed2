package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
)

func (r *REPL) readInput() (string, error) {
	line, err := r.rl.Readline()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// promptLine reads a single answer under a temporary prompt.
func (r *REPL) promptLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	defer r.rl.SetPrompt(r.formatter.FormatPrompt())

	return r.readInput()
}

func (r *REPL) parseCommand(input string) (bool, string, string) {
	if !strings.HasPrefix(input, "/") {
		return false, "", ""
	}

	parts := strings.SplitN(input, " ", 2)
	command := strings.ToLower(parts[0])

	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	return true, command, args
}

func setupReadline(prompt string) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              prompt,
		HistoryFile:         "",
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		AutoComplete:        completer(),
		FuncFilterInputRune: filterInput,
	})

	return rl, err
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("/list",
			readline.PcItem("exam"),
			readline.PcItem("deadline"),
			readline.PcItem("class"),
			readline.PcItem("event"),
		),
		readline.PcItem("/next"),
		readline.PcItem("/show"),
		readline.PcItem("/watch"),
		readline.PcItem("/calendar"),
		readline.PcItem("/mode",
			readline.PcItem("compact"),
			readline.PcItem("full"),
		),
		readline.PcItem("/help"),
		readline.PcItem("/quit"),
	)
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func isEOF(err error) bool {
	return err == io.EOF || err == readline.ErrInterrupt
}
