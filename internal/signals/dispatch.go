package signals

import (
	"fmt"
	"syscall"

	"github.com/reapctl/reap/internal/models"
)

// Sender delivers one signal to one process.
type Sender interface {
	Signal(pid int, sig syscall.Signal) error
}

// SyscallSender sends signals through the kernel.
type SyscallSender struct{}

func (SyscallSender) Signal(pid int, sig syscall.Signal) error {
	if pid <= 0 {
		return fmt.Errorf("invalid PID: %d", pid)
	}
	if err := syscall.Kill(pid, sig); err != nil {
		return fmt.Errorf("send signal %v to PID %d: %w", sig, pid, err)
	}
	return nil
}

// Outcome is the per-target result of a dispatch.
type Outcome struct {
	Record models.ProcessRecord
	Err    error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

// Dispatcher sends a signal to a list of targets sequentially.
type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Dispatch attempts delivery to every target. A failed send (target already
// exited, permission denied) does not stop the remaining targets; each
// outcome is reported individually and nothing is retried or rolled back.
func (d *Dispatcher) Dispatch(targets []models.ProcessRecord, sig syscall.Signal) []Outcome {
	outcomes := make([]Outcome, 0, len(targets))
	for _, target := range targets {
		outcomes = append(outcomes, Outcome{
			Record: target,
			Err:    d.sender.Signal(target.PID, sig),
		})
	}
	return outcomes
}
