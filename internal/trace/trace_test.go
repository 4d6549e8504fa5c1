package trace

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceAppendPreservesOrder(t *testing.T) {
	tr := New(12345)
	tr.Append(StepAccountObserved, nil)
	tr.Append(StepDebounced, map[string]string{"key": "v"})
	tr.Append(Custom("ManualCheckpoint"), nil)

	steps := tr.Steps()
	require.Len(t, steps, 3)
	assert.Equal(t, StepAccountObserved, steps[0].Type)
	assert.Equal(t, StepType("ManualCheckpoint"), steps[2].Type)
}

func TestTraceDumpReportsRelativeDeltas(t *testing.T) {
	tr := New(1)
	tr.Append(StepAccountObserved, nil)
	time.Sleep(5 * time.Millisecond)
	tr.Append(StepDebounced, nil)

	raw, err := tr.Dump()
	require.NoError(t, err)

	var decoded struct {
		Steps []struct {
			DeltaMs int64 `json:"delta_ms"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Steps, 2)
	assert.Equal(t, int64(0), decoded.Steps[0].DeltaMs)
	assert.GreaterOrEqual(t, decoded.Steps[1].DeltaMs, int64(1))
}

func TestTraceElapsedSinceFirstStep(t *testing.T) {
	tr := New(1)
	assert.Equal(t, time.Duration(0), tr.ElapsedSince())

	tr.Append(StepAccountObserved, nil)
	time.Sleep(10 * time.Millisecond)
	assert.GreaterOrEqual(t, tr.ElapsedSince(), 10*time.Millisecond)
}
