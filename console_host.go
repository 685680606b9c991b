package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ConsoleHost drains each car's Log device between ticks and prints it to
// stdout, prefixed with the car's display name. Adapted from the host's
// stdin raw-mode terminal adapter, redirected to drive output draining
// instead of keystroke input — the guest ABI here has no keyboard device.
type ConsoleHost struct {
	out        io.Writer
	isTerminal bool
}

// NewConsoleHost builds a console adapter writing to stdout, detecting
// whether stdout is an interactive terminal so output framing can adapt.
func NewConsoleHost() *ConsoleHost {
	fd := int(os.Stdout.Fd())
	return &ConsoleHost{
		out:        os.Stdout,
		isTerminal: term.IsTerminal(fd),
	}
}

// DrainAndPrint drains every car's Log buffer and writes any pending bytes
// to the console as-is, after one name prefix per car that produced output
// this tick; no newline is added after them.
func (h *ConsoleHost) DrainAndPrint(cars []*CarEntry) {
	for _, c := range cars {
		out := c.Log.Drain()
		if len(out) == 0 {
			continue
		}
		if h.isTerminal {
			fmt.Fprintf(h.out, "[%s] %s", c.Name, out)
		} else {
			fmt.Fprintf(h.out, "%s: %s", c.Name, out)
		}
	}
}
