package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reapctl/reap/internal/models"
	"github.com/reapctl/reap/internal/signals"
	"github.com/reapctl/reap/internal/ui"
)

// runInteractive shows the selection table and dispatches to whatever was
// marked when the user confirmed. Without --live the table is a single
// sample; --live resamples on a timer.
func runInteractive(opts *options, sample ui.SampleFunc, dispatcher *signals.Dispatcher, sig syscall.Signal, portMode bool) error {
	app := ui.NewApp(sample, opts.live, portMode)

	final, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	finalApp := final.(*ui.App)
	if err := finalApp.Err(); err != nil {
		return err
	}

	sess := finalApp.Session()
	if !sess.KillOnExit() {
		fmt.Println("No processes selected")
		return nil
	}
	targets := sess.KillList()
	if len(targets) == 0 {
		fmt.Println("No processes selected")
		return nil
	}

	report(dispatcher.Dispatch(targets, sig))
	return nil
}

// runNuke treats the whole filtered result set as the kill list. The
// mandatory-filter guard has already run; this path still prompts on the
// terminal unless --yes was given.
func runNuke(opts *options, sample ui.SampleFunc, dispatcher *signals.Dispatcher, sig syscall.Signal) error {
	targets, err := sample()
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Println("No processes found")
		return nil
	}

	if !opts.yes {
		fmt.Printf("About to send %s to %d process(es):\n", strings.ToUpper(opts.signal), len(targets))
		for _, t := range targets {
			fmt.Printf("  %s (PID: %d)\n", t.Name, t.PID)
		}
		fmt.Print("Proceed? [y/N] ")

		proceed, err := promptProceed(os.Stdin)
		if err != nil {
			return err
		}
		if !proceed {
			fmt.Println("Aborted")
			return nil
		}
	}

	report(dispatcher.Dispatch(targets, sig))
	return nil
}

// promptProceed reads one line and accepts only an explicit yes. EOF (closed
// stdin, ctrl-d) counts as a refusal; any other read failure is an error
// rather than a silent abort.
func promptProceed(in io.Reader) (bool, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// report prints one line per target.
func report(outcomes []signals.Outcome) {
	for _, o := range outcomes {
		target := formatTarget(o.Record)
		if o.OK() {
			fmt.Printf("%s %s\n", ui.SuccessStyle.Render("Killed"), target)
		} else {
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", ui.ErrorStyle.Render("Failed"), target, o.Err)
		}
	}
}

func formatTarget(rec models.ProcessRecord) string {
	detail := fmt.Sprintf("(PID: %d)", rec.PID)
	if rec.HasPort() {
		detail = fmt.Sprintf("(PID: %d, %s/%d)", rec.PID, rec.Protocol, rec.Port)
	}
	return fmt.Sprintf("%s %s", rec.Name, ui.DimStyle.Render(detail))
}
