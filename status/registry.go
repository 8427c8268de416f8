package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Registry is the central metrics facade
// Components cache pointers during construction; per-frame code writes the atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Sample is a formatted metric reading
type Sample struct {
	Key   string
	Value string
}

// Snapshot formats every metric, grouped by type then sorted by key
func (r *Registry) Snapshot() []Sample {
	out := make([]Sample, 0, r.TotalCount())
	r.Bools.Range(func(k string, p *atomic.Bool) {
		out = append(out, Sample{k, strconv.FormatBool(p.Load())})
	})
	r.Ints.Range(func(k string, p *atomic.Int64) {
		out = append(out, Sample{k, strconv.FormatInt(p.Load(), 10)})
	})
	r.Floats.Range(func(k string, p *AtomicFloat) {
		out = append(out, Sample{k, fmt.Sprintf("%.3f", p.Get())})
	})
	r.Strings.Range(func(k string, p *AtomicString) {
		out = append(out, Sample{k, p.Load()})
	})
	return out
}
