package submit

import (
	"time"

	"go.uber.org/zap"

	"github.com/solarbx/mevcore/internal/logger"
	"github.com/solarbx/mevcore/internal/trace"
)

// TraceSink persists every fire task's trace dump as one JSON line, a
// sidecar audit trail alongside the mev_simulation_log table rows for
// ad-hoc replay and latency debugging. Built on the teacher's buffered
// SafeFileWriter so concurrent fire tasks can append without a lock per
// write call site.
type TraceSink struct {
	writer *logger.SafeFileWriter
	logger *zap.Logger
}

// NewTraceSink opens path for append, flushing at flushInterval.
func NewTraceSink(path string, flushInterval time.Duration, log *zap.Logger) (*TraceSink, error) {
	w, err := logger.NewSafeFileWriter(path, flushInterval, log)
	if err != nil {
		return nil, err
	}
	return &TraceSink{writer: w, logger: log.Named("submit.tracesink")}, nil
}

// Record appends t's JSON dump as one line. Failures are logged, not
// returned: a lost audit line must never affect the fire task outcome.
func (s *TraceSink) Record(t *trace.Trace) {
	dump, err := t.Dump()
	if err != nil {
		s.logger.Warn("trace dump failed", zap.Error(err), zap.String("trace_id", t.ID))
		return
	}
	if err := s.writer.WriteLine(string(dump)); err != nil {
		s.logger.Warn("trace sink write failed", zap.Error(err), zap.String("trace_id", t.ID))
	}
}

// Close flushes and closes the underlying file.
func (s *TraceSink) Close() error {
	return s.writer.Close()
}
