// Package cli wires flags, sampling, the interactive view and signal
// dispatch together. All validation that can fail fast (signal name, sort
// key, nuke guard) happens before any sampling runs.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/reapctl/reap/internal/models"
	"github.com/reapctl/reap/internal/sampler"
	"github.com/reapctl/reap/internal/signals"
)

type options struct {
	filter string
	signal string
	sortBy string
	live   bool
	ports  bool
	port   int
	nuke   bool
	yes    bool
}

// NewRootCommand builds the reap command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "reap",
		Short: "Find and kill processes interactively",
		Long: `reap lists running processes with live CPU and memory usage, lets you
mark some and send them a signal. With --ports it correlates processes
with their listening sockets, one row per (process, port) pair.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.filter, "filter", "f", "", "pre-filter processes by name (case-insensitive substring)")
	f.StringVarP(&opts.signal, "signal", "s", "KILL", "signal to send (name or number, e.g. TERM, SIGHUP, 9)")
	f.StringVar(&opts.sortBy, "sort", "cpu", "sort field: cpu, memory, pid, name, port")
	f.BoolVarP(&opts.live, "live", "l", false, "live mode with auto-refreshing process list")
	f.BoolVarP(&opts.ports, "ports", "p", false, "show listening ports, one row per (process, port)")
	f.IntVar(&opts.port, "port", 0, "only processes listening on exactly this port (implies --ports)")
	f.BoolVar(&opts.nuke, "nuke", false, "signal the entire filtered result set, no interactive selection")
	f.BoolVarP(&opts.yes, "yes", "y", false, "skip the confirmation prompt with --nuke")

	return cmd
}

func run(opts *options) error {
	// Resolution and guards come first: nothing is sampled, let alone
	// signaled, on a bad configuration.
	sig, err := signals.Resolve(opts.signal)
	if err != nil {
		return err
	}
	sortKey, err := models.ParseSortKey(opts.sortBy)
	if err != nil {
		return err
	}
	if opts.nuke && opts.filter == "" && opts.port == 0 {
		return errors.New("--nuke requires --filter or --port: refusing to target every process on the host")
	}

	portMode := opts.ports || opts.port != 0

	source := sampler.NewSystemSource()
	smp := sampler.New(source, sampler.WithListeners(source))

	sample := func() ([]models.ProcessRecord, error) {
		var records []models.ProcessRecord
		var err error
		if portMode {
			records, err = smp.SampleWithPorts(opts.filter, opts.port)
		} else {
			records, err = smp.Sample(opts.filter)
		}
		if err != nil {
			return nil, err
		}
		models.Sort(records, sortKey)
		return records, nil
	}

	dispatcher := signals.NewDispatcher(signals.SyscallSender{})

	if opts.nuke {
		return runNuke(opts, sample, dispatcher, sig)
	}
	return runInteractive(opts, sample, dispatcher, sig, portMode)
}
