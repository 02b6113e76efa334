package cli

import (
	"bufio"
	"fmt"
	"io"
)

// notifier prints screen notifications. When interactive, an alert blocks
// until the user presses Enter.
type notifier struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func (n *notifier) Alert(msg string) {
	fmt.Fprintln(n.out, alertStyle.Render("! "+msg))
	if n.interactive {
		fmt.Fprint(n.out, mutedStyle.Render("(press Enter)"))
		_, _ = n.in.ReadString('\n')
	}
}

func (n *notifier) Info(msg string) {
	fmt.Fprintln(n.out, infoStyle.Render(msg))
}
