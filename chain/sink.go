// SPDX-License-Identifier: MIT
package chain

import (
	"context"
	"errors"
	"sync"
)

// Sink consumes a chain's output: one Record per accepted plan (plan 0
// included), then one Finish with the final graph.
type Sink interface {
	Record(ctx context.Context, r *Record) error
	Finish(ctx context.Context, res *Result) error
}

// MemorySink keeps every record in memory.
type MemorySink struct {
	mu      sync.Mutex
	records []*Record
	result  *Result
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

// Record implements Sink.
func (m *MemorySink) Record(_ context.Context, r *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)

	return nil
}

// Finish implements Sink.
func (m *MemorySink) Finish(_ context.Context, res *Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = res

	return nil
}

// Records returns the records received so far.
func (m *MemorySink) Records() []*Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*Record(nil), m.records...)
}

// Result returns the final result, or nil before Finish.
func (m *MemorySink) Result() *Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.result
}

// Tee fans every call out to all sinks in order, joining their errors.
func Tee(sinks ...Sink) Sink { return tee(sinks) }

type tee []Sink

func (t tee) Record(ctx context.Context, r *Record) error {
	var errs []error
	for _, s := range t {
		errs = append(errs, s.Record(ctx, r))
	}

	return errors.Join(errs...)
}

func (t tee) Finish(ctx context.Context, res *Result) error {
	var errs []error
	for _, s := range t {
		errs = append(errs, s.Finish(ctx, res))
	}

	return errors.Join(errs...)
}
