package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errUnknownCommand = errors.New("unknown command")

// execIface is the command surface the REPL drives. The real App satisfies
// it; tests can provide a lightweight stub.
type execIface interface {
	help() []string
	exec(ctx context.Context, cmd string, args []string) error
}

// runREPL reads a line, splits it into a command and its arguments and
// dispatches to a. It returns on EOF, on "exit"/"quit" or when ctx ends.
//
// Errors returned by commands are not fatal: they were already reported to
// the user by the screens, except for unknown commands and usage errors,
// which are printed here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(w, promptStyle.Render(fmt.Sprintf("portal %s>", statusFn()))+" ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "?":
			fmt.Fprintln(w, "Available commands:")
			for _, h := range a.help() {
				fmt.Fprintln(w, "  "+h)
			}
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			var usage usageError
			switch err := a.exec(ctx, cmd, args); {
			case errors.Is(err, errUnknownCommand):
				fmt.Fprintln(w, "Unknown command:", cmd)
			case errors.As(err, &usage):
				fmt.Fprintln(w, "Usage:", usage.usage)
			}
		}
	}
}

type usageError struct{ usage string }

func (e usageError) Error() string { return "usage: " + e.usage }
