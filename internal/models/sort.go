package models

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey selects the ordering applied to a record list.
type SortKey int

const (
	SortCPU SortKey = iota
	SortMemory
	SortPID
	SortName
	SortPort
)

var sortKeyNames = map[string]SortKey{
	"cpu":    SortCPU,
	"memory": SortMemory,
	"mem":    SortMemory,
	"pid":    SortPID,
	"name":   SortName,
	"port":   SortPort,
}

// ParseSortKey maps flag text to a SortKey. Unknown text is an error.
func ParseSortKey(s string) (SortKey, error) {
	key, ok := sortKeyNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return SortCPU, fmt.Errorf("unknown sort key: %q (want cpu, memory, pid, name or port)", s)
	}
	return key, nil
}

func (k SortKey) String() string {
	switch k {
	case SortCPU:
		return "cpu"
	case SortMemory:
		return "memory"
	case SortPID:
		return "pid"
	case SortName:
		return "name"
	case SortPort:
		return "port"
	}
	return "cpu"
}

// less is the comparator for one key. CPU and memory order descending, the
// rest ascending. Name comparison is case-insensitive. Records without a
// port (Port 0) sort before any record with one.
func (k SortKey) less(a, b *ProcessRecord) bool {
	switch k {
	case SortCPU:
		return a.CPUPercent > b.CPUPercent
	case SortMemory:
		return a.MemoryMB > b.MemoryMB
	case SortPID:
		return a.PID < b.PID
	case SortName:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case SortPort:
		return a.Port < b.Port
	}
	return false
}

// Sort orders records in place by the given key. Ties keep insertion order.
func Sort(records []ProcessRecord, key SortKey) {
	sort.SliceStable(records, func(i, j int) bool {
		return key.less(&records[i], &records[j])
	})
}
