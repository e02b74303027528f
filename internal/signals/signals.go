package signals

import (
	"fmt"
	"strings"
	"syscall"
)

// UnknownSignalError reports signal text that matched nothing in the table.
type UnknownSignalError struct {
	Text string
}

func (e *UnknownSignalError) Error() string {
	return fmt.Sprintf("unknown signal: %s", e.Text)
}

// signalTable maps mnemonic names and their numeric aliases to signals.
var signalTable = map[string]syscall.Signal{
	"KILL": syscall.SIGKILL, "9": syscall.SIGKILL,
	"TERM": syscall.SIGTERM, "15": syscall.SIGTERM,
	"INT": syscall.SIGINT, "2": syscall.SIGINT,
	"HUP": syscall.SIGHUP, "1": syscall.SIGHUP,
	"QUIT": syscall.SIGQUIT, "3": syscall.SIGQUIT,
	"USR1": syscall.SIGUSR1, "10": syscall.SIGUSR1,
	"USR2": syscall.SIGUSR2, "12": syscall.SIGUSR2,
	"STOP": syscall.SIGSTOP, "19": syscall.SIGSTOP,
	"CONT": syscall.SIGCONT, "18": syscall.SIGCONT,
}

// Resolve maps operator-supplied signal text to a concrete signal.
// Matching is case-insensitive and a leading "SIG" prefix is optional, so
// "kill", "KILL", "SIGKILL" and "9" all resolve to SIGKILL.
func Resolve(text string) (syscall.Signal, error) {
	name := strings.ToUpper(strings.TrimSpace(text))
	name = strings.TrimPrefix(name, "SIG")
	if sig, ok := signalTable[name]; ok {
		return sig, nil
	}
	return 0, &UnknownSignalError{Text: text}
}
