package sampler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reapctl/reap/internal/models"
)

type fakeListeners struct {
	listeners []Listener
	err       error
}

func (f *fakeListeners) Listeners() ([]Listener, error) {
	return f.listeners, f.err
}

func TestMapPortsGroupsByPID(t *testing.T) {
	src := &fakeListeners{listeners: []Listener{
		{PID: 10, Port: 80, Protocol: "tcp"},
		{PID: 10, Port: 443, Protocol: "tcp"},
		{PID: 20, Port: 53, Protocol: "udp"},
	}}

	ports := MapPorts(src)

	assert.Len(t, ports, 2)
	assert.Equal(t, []PortBinding{{80, "tcp"}, {443, "tcp"}}, ports[10])
	assert.Equal(t, []PortBinding{{53, "udp"}}, ports[20])
}

func TestMapPortsDeduplicatesDualStack(t *testing.T) {
	// The same logical endpoint reported once per address family.
	src := &fakeListeners{listeners: []Listener{
		{PID: 10, Port: 8080, Protocol: "tcp"},
		{PID: 10, Port: 8080, Protocol: "tcp"},
	}}

	ports := MapPorts(src)

	assert.Equal(t, []PortBinding{{8080, "tcp"}}, ports[10])
}

func TestMapPortsKeepsDistinctProtocols(t *testing.T) {
	src := &fakeListeners{listeners: []Listener{
		{PID: 10, Port: 53, Protocol: "tcp"},
		{PID: 10, Port: 53, Protocol: "udp"},
	}}

	ports := MapPorts(src)

	assert.Len(t, ports[10], 2)
}

func TestMapPortsDegradesToEmptyOnError(t *testing.T) {
	ports := MapPorts(&fakeListeners{err: errors.New("permission denied")})

	assert.NotNil(t, ports)
	assert.Empty(t, ports)
}

func TestMapPortsNilSource(t *testing.T) {
	assert.Empty(t, MapPorts(nil))
}

func newPortSampler(procs []models.ProcessRecord, listeners []Listener) *Sampler {
	return New(
		&fakeSource{snapshots: [][]models.ProcessRecord{procs}},
		WithListeners(&fakeListeners{listeners: listeners}),
		withSleep(func(time.Duration) {}),
	)
}

func TestSampleWithPortsOneRecordPerBinding(t *testing.T) {
	s := newPortSampler(
		[]models.ProcessRecord{
			{PID: 10, Name: "nginx", CPUPercent: 3.5, MemoryMB: 120},
			{PID: 20, Name: "bash"},
		},
		[]Listener{
			{PID: 10, Port: 80, Protocol: "tcp"},
			{PID: 10, Port: 443, Protocol: "tcp"},
		},
	)

	got, err := s.SampleWithPorts("", 0)
	require.NoError(t, err)

	// bash owns no listener and is excluded entirely; nginx expands to one
	// record per binding, each carrying the single CPU/memory sample.
	require.Len(t, got, 2)
	assert.Equal(t, 80, got[0].Port)
	assert.Equal(t, 443, got[1].Port)
	for _, rec := range got {
		assert.Equal(t, "nginx", rec.Name)
		assert.Equal(t, 3.5, rec.CPUPercent)
		assert.Equal(t, uint64(120), rec.MemoryMB)
	}
}

func TestSampleWithPortsExactPortFilter(t *testing.T) {
	s := newPortSampler(
		[]models.ProcessRecord{{PID: 10, Name: "nginx"}, {PID: 30, Name: "postgres"}},
		[]Listener{
			{PID: 10, Port: 80, Protocol: "tcp"},
			{PID: 10, Port: 443, Protocol: "tcp"},
			{PID: 30, Port: 5432, Protocol: "tcp"},
		},
	)

	got, err := s.SampleWithPorts("", 5432)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "postgres", got[0].Name)
	assert.Equal(t, 5432, got[0].Port)
}

func TestSampleWithPortsNameFilterBeforeExpansion(t *testing.T) {
	s := newPortSampler(
		[]models.ProcessRecord{{PID: 10, Name: "nginx"}, {PID: 30, Name: "postgres"}},
		[]Listener{
			{PID: 10, Port: 80, Protocol: "tcp"},
			{PID: 30, Port: 5432, Protocol: "tcp"},
		},
	)

	got, err := s.SampleWithPorts("post", 0)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, 5432, got[0].Port)
}

func TestSampleWithPortsListenerFailureShowsNoRows(t *testing.T) {
	s := New(
		&fakeSource{snapshots: [][]models.ProcessRecord{{{PID: 10, Name: "nginx"}}}},
		WithListeners(&fakeListeners{err: errors.New("insufficient privilege")}),
		withSleep(func(time.Duration) {}),
	)

	got, err := s.SampleWithPorts("", 0)
	require.NoError(t, err, "listener failure degrades, it does not abort the pass")
	assert.Empty(t, got)
}
