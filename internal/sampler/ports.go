package sampler

// Listener is one socket in a listening state with its owning process.
type Listener struct {
	PID      int
	Port     int
	Protocol string
}

// ListenerSource enumerates listening sockets. Implementations may fail for
// privilege reasons; callers degrade rather than abort.
type ListenerSource interface {
	Listeners() ([]Listener, error)
}

// PortBinding is one (port, protocol) endpoint owned by a process.
type PortBinding struct {
	Port     int
	Protocol string
}

// MapPorts groups listening sockets by owning pid. Duplicate
// (pid, port, protocol) triples collapse to one binding: the OS reports a
// dual-stack socket once per address family, but it is a single logical
// endpoint. Enumeration failure yields an empty map, so port mode shows no
// rows instead of crashing the sampling pass.
func MapPorts(src ListenerSource) map[int][]PortBinding {
	ports := make(map[int][]PortBinding)
	if src == nil {
		return ports
	}
	listeners, err := src.Listeners()
	if err != nil {
		return ports
	}

	seen := make(map[Listener]struct{}, len(listeners))
	for _, l := range listeners {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		ports[l.PID] = append(ports[l.PID], PortBinding{Port: l.Port, Protocol: l.Protocol})
	}
	return ports
}
