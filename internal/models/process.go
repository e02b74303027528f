package models

// ProcessRecord is one observed process at a sampling instant. PIDs can be
// reused by the OS after exit, so a record is not a stable identity across
// refreshes. In port mode a process owning several ports produces one record
// per (pid, port) pair.
type ProcessRecord struct {
	PID        int
	Name       string
	CPUPercent float64
	MemoryMB   uint64

	// Port and Protocol are set only in port mode. Port 0 means the record
	// carries no port.
	Port     int
	Protocol string
}

// HasPort reports whether the record came from port correlation.
func (r ProcessRecord) HasPort() bool {
	return r.Port != 0
}
