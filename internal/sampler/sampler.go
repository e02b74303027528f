package sampler

import (
	"fmt"
	"strings"
	"time"

	"github.com/reapctl/reap/internal/models"
)

// DefaultDelay separates the two process snapshots of a sample. CPU usage is
// a rate, so a single snapshot cannot produce a meaningful value; the first
// pass primes per-process CPU counters and the second reads the delta.
const DefaultDelay = 200 * time.Millisecond

// ProcessSource is the impure view of the OS process table. The first
// Snapshot of a sampling pass primes CPU accounting; the second carries the
// delta-based CPUPercent.
type ProcessSource interface {
	Snapshot() ([]models.ProcessRecord, error)
}

// Sampler produces process records using two time-separated snapshots.
type Sampler struct {
	source    ProcessSource
	listeners ListenerSource
	delay     time.Duration
	sleep     func(time.Duration)
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithDelay overrides the inter-snapshot delay.
func WithDelay(d time.Duration) Option {
	return func(s *Sampler) { s.delay = d }
}

// WithListeners enables port correlation through the given source.
func WithListeners(src ListenerSource) Option {
	return func(s *Sampler) { s.listeners = src }
}

// withSleep substitutes the blocking sleep, for tests.
func withSleep(fn func(time.Duration)) Option {
	return func(s *Sampler) { s.sleep = fn }
}

func New(source ProcessSource, opts ...Option) *Sampler {
	s := &Sampler{
		source: source,
		delay:  DefaultDelay,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample takes two snapshots separated by the configured delay and returns
// records whose lowercased name contains the lowercased filter. An empty
// filter matches everything; zero matches is a valid, empty result.
func (s *Sampler) Sample(filter string) ([]models.ProcessRecord, error) {
	if _, err := s.source.Snapshot(); err != nil {
		return nil, fmt.Errorf("process snapshot: %w", err)
	}
	s.sleep(s.delay)
	records, err := s.source.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("process snapshot: %w", err)
	}
	return filterByName(records, filter), nil
}

// SampleWithPorts samples as Sample does, then expands each process that owns
// listening ports into one record per (port, protocol) binding. Processes
// with no listening port are dropped. A non-zero portFilter keeps only
// bindings on exactly that port. Name filtering applies once per process,
// before port expansion.
func (s *Sampler) SampleWithPorts(filter string, portFilter int) ([]models.ProcessRecord, error) {
	records, err := s.Sample(filter)
	if err != nil {
		return nil, err
	}

	ports := MapPorts(s.listeners)

	expanded := make([]models.ProcessRecord, 0, len(records))
	for _, rec := range records {
		for _, b := range ports[rec.PID] {
			if portFilter != 0 && b.Port != portFilter {
				continue
			}
			r := rec
			r.Port = b.Port
			r.Protocol = b.Protocol
			expanded = append(expanded, r)
		}
	}
	return expanded, nil
}

func filterByName(records []models.ProcessRecord, filter string) []models.ProcessRecord {
	if filter == "" {
		return records
	}
	needle := strings.ToLower(filter)
	kept := make([]models.ProcessRecord, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			kept = append(kept, rec)
		}
	}
	return kept
}
