// Package cli is the interactive terminal front end.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/katiamach/weather-forecast-app/internal/app"
	"github.com/katiamach/weather-forecast-app/internal/view"
)

const (
	prompt      = "Search city... "
	quitCommand = ":q"
)

// Notifier prints alerts to a writer.
type Notifier struct {
	out io.Writer
}

// NewNotifier creates new Notifier.
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// Alert prints the alert title and, if present, its message.
func (n *Notifier) Alert(title, message string) {
	if message == "" {
		fmt.Fprintf(n.out, "! %s\n", title)
		return
	}
	fmt.Fprintf(n.out, "! %s: %s\n", title, message)
}

// Run reads one city per line from in and prints its weather to out until EOF,
// the quit command or ctx is done.
func Run(ctx context.Context, in io.Reader, out io.Writer, shell *app.Shell) error {
	shell.Subscribe(func(st app.State) {
		if st.Stage == app.StageLoading {
			_ = view.Render(out, true, nil)
		}
	})

	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, prompt)

		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == quitCommand {
			break
		}

		shell.SetQuery(line)
		shell.Submit(ctx)

		st := shell.State()
		err := view.Render(out, st.IsLoading, st.Result)
		if err != nil {
			return err
		}

		if ctx.Err() != nil {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}
