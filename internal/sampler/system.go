package sampler

import (
	psnet "github.com/shirou/gopsutil/v3/net"
	psproc "github.com/shirou/gopsutil/v3/process"

	"github.com/reapctl/reap/internal/models"
)

// listProcesses enumerates the process table. Package-level so tests can
// substitute a scripted enumeration.
var listProcesses = psproc.Processes

// SystemSource reads the live OS process and socket tables through gopsutil.
// It implements both ProcessSource and ListenerSource.
//
// Percent(0) reports CPU consumed since the previous Percent call on the
// same handle and returns 0 on a handle it has never seen, so the source
// caches handles by pid across snapshots: the first pass of a sample primes
// them, the second reads the delta. Enumeration hands back fresh handles
// every time; using those directly would discard the priming.
type SystemSource struct {
	handles map[int32]*psproc.Process
}

func NewSystemSource() *SystemSource {
	return &SystemSource{handles: make(map[int32]*psproc.Process)}
}

// Snapshot walks the process table through the handle cache. Handles for
// exited pids are pruned so a recycled pid cannot inherit stale CPU
// accounting. Processes that exit mid-walk are skipped.
func (s *SystemSource) Snapshot() ([]models.ProcessRecord, error) {
	procs, err := listProcesses()
	if err != nil {
		return nil, err
	}

	seen := make(map[int32]struct{}, len(procs))
	records := make([]models.ProcessRecord, 0, len(procs))
	for _, p := range procs {
		seen[p.Pid] = struct{}{}

		handle, ok := s.handles[p.Pid]
		if !ok {
			handle = p
			s.handles[p.Pid] = p
		}

		name, err := handle.Name()
		if err != nil || name == "" {
			continue
		}

		cpu, err := handle.Percent(0)
		if err != nil {
			cpu = 0
		}

		var memMB uint64
		if mi, err := handle.MemoryInfo(); err == nil && mi != nil {
			memMB = mi.RSS / 1024 / 1024
		}

		records = append(records, models.ProcessRecord{
			PID:        int(handle.Pid),
			Name:       name,
			CPUPercent: cpu,
			MemoryMB:   memMB,
		})
	}

	for pid := range s.handles {
		if _, ok := seen[pid]; !ok {
			delete(s.handles, pid)
		}
	}

	return records, nil
}

// Listeners enumerates TCP sockets in LISTEN state and bound UDP sockets
// with no remote endpoint. Both IPv4 and IPv6 families are included; the
// caller collapses dual-stack duplicates.
func (s *SystemSource) Listeners() ([]Listener, error) {
	tcp, err := psnet.Connections("tcp")
	if err != nil {
		return nil, err
	}

	var out []Listener
	for _, c := range tcp {
		if c.Status != "LISTEN" || c.Pid <= 0 {
			continue
		}
		out = append(out, Listener{PID: int(c.Pid), Port: int(c.Laddr.Port), Protocol: "tcp"})
	}

	// UDP has no LISTEN state; an unconnected bound socket is the closest
	// equivalent. Failure here keeps the TCP results.
	udp, err := psnet.Connections("udp")
	if err != nil {
		return out, nil
	}
	for _, c := range udp {
		if c.Pid <= 0 || c.Raddr.Port != 0 {
			continue
		}
		out = append(out, Listener{PID: int(c.Pid), Port: int(c.Laddr.Port), Protocol: "udp"})
	}
	return out, nil
}
