// Package trace implements the per-event breadcrumb chain used for
// latency accounting across the pipeline (spec §4.8).
package trace

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StepType enumerates the well-known pipeline checkpoints a Trace passes
// through. Custom carries anything outside this set without forcing a new
// constant for every one-off diagnostic step.
type StepType string

const (
	StepAccountObserved         StepType = "AccountObserved"
	StepDebounced               StepType = "Debounced"
	StepPoolUpdateTriggered     StepType = "PoolUpdateTriggered"
	StepNewPoolDiscovered       StepType = "NewPoolDiscovered"
	StepEvaluatorDedupDropped   StepType = "EvaluatorDedupDropped"
	StepEvaluatorRateLimited    StepType = "EvaluatorRateLimited"
	StepEvaluatorNoSiblingPools StepType = "EvaluatorNoSiblingPools"
	StepSimulationStarted       StepType = "SimulationStarted"
	StepSimulationReturned      StepType = "SimulationReturned"
	StepDeadlineAborted         StepType = "DeadlineAborted"
	StepMevRealTxRpcReturned    StepType = "MevRealTxRpcReturned"
	StepTerminalDropped         StepType = "TerminalDropped"
)

// Custom builds a StepType outside the enumerated set for an ad-hoc
// diagnostic checkpoint.
func Custom(label string) StepType { return StepType(label) }

// Step is one breadcrumb: a typed checkpoint, optional key/value
// attributes, and the wall-clock time it was recorded.
type Step struct {
	Type       StepType          `json:"type"`
	Attributes map[string]string `json:"attributes,omitempty"`
	At         time.Time         `json:"at"`
}

// Trace is the append-only, mutex-guarded breadcrumb chain allocated once
// per originating event. Stages share one Trace by pointer, and every
// append goes through the same mutex, so concurrent appends are safe.
type Trace struct {
	ID            string
	OriginatingSlot uint64

	mu    sync.Mutex
	steps []Step
}

// New allocates a Trace with a fresh id for the given originating slot.
func New(originatingSlot uint64) *Trace {
	return &Trace{
		ID:              uuid.NewString(),
		OriginatingSlot: originatingSlot,
	}
}

// Append adds a Step with the current wall-clock time. Never held across
// an await: callers append, then release, then proceed.
func (t *Trace) Append(stepType StepType, attrs map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.steps = append(t.steps, Step{Type: stepType, Attributes: attrs, At: time.Now()})
}

// Steps returns a defensive copy of the recorded steps in order.
func (t *Trace) Steps() []Step {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// dumpStep is the JSON shape for one step in Dump: a relative-millisecond
// delta from the trace's first step rather than an absolute timestamp.
type dumpStep struct {
	Type       StepType          `json:"type"`
	Attributes map[string]string `json:"attributes,omitempty"`
	DeltaMs    int64             `json:"delta_ms"`
}

// Dump renders the trace as JSON with step ordering preserved and
// relative-millisecond deltas from the first step.
func (t *Trace) Dump() ([]byte, error) {
	steps := t.Steps()

	out := struct {
		ID              string     `json:"id"`
		OriginatingSlot uint64     `json:"originating_slot"`
		Steps           []dumpStep `json:"steps"`
	}{ID: t.ID, OriginatingSlot: t.OriginatingSlot}

	if len(steps) == 0 {
		return json.Marshal(out)
	}

	first := steps[0].At
	out.Steps = make([]dumpStep, len(steps))
	for i, s := range steps {
		out.Steps[i] = dumpStep{
			Type:       s.Type,
			Attributes: s.Attributes,
			DeltaMs:    s.At.Sub(first).Milliseconds(),
		}
	}

	return json.Marshal(out)
}

// ElapsedSince returns the duration since the first recorded step, used by
// the submit pipeline's 300ms/400ms deadline gates.
func (t *Trace) ElapsedSince() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.steps) == 0 {
		return 0
	}
	return time.Since(t.steps[0].At)
}
