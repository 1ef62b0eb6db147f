package provisioning

import (
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/go-logr/logr"

	"github.com/geodata/etlprov/internal/connectivity"
	"github.com/geodata/etlprov/internal/envfile"
	"github.com/geodata/etlprov/internal/metrics"
)

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event. Fields never carry secrets.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "collect-source", "persist")
	Message   string            // Human-readable message
	Timestamp time.Time         // When the event occurred
	Duration  time.Duration     // Elapsed time for completed or failed work
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventConnectionVerified indicates a store accepted the collected credentials.
	EventConnectionVerified EventType = "connection.verified"

	// EventFileBackedUp indicates the previous secrets file was copied aside.
	EventFileBackedUp EventType = "file.backed_up"
	// EventFileWritten indicates the secrets file was replaced.
	EventFileWritten EventType = "file.written"

	// EventValidationWarning indicates a non-fatal validation finding.
	EventValidationWarning EventType = "validation.warning"

	// EventRunCompleted indicates every phase succeeded.
	EventRunCompleted EventType = "run.completed"
)

// LogObserver implements Observer on top of a logr.Logger.
type LogObserver struct {
	logger        logr.Logger
	contextFields map[string]string
}

// NewLogObserver creates a new logger-backed observer.
func NewLogObserver(logger logr.Logger) *LogObserver {
	return &LogObserver{
		logger:        logger,
		contextFields: make(map[string]string),
	}
}

// Event implements Observer interface.
func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	kv := []any{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Duration > 0 {
		kv = append(kv, "duration", event.Duration.Round(time.Millisecond).String())
	}

	// Merge context fields; event fields win
	fields := make(map[string]string, len(o.contextFields)+len(event.Fields))
	maps.Copy(fields, o.contextFields)
	maps.Copy(fields, event.Fields)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}

	switch event.Type {
	case EventPhaseFailed:
		o.logger.Error(nil, event.Message, kv...)
	case EventPhaseStarted:
		o.logger.V(1).Info(event.Message, kv...)
	default:
		o.logger.Info(event.Message, kv...)
	}
}

// WithFields implements Observer interface.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	maps.Copy(newFields, o.contextFields)
	maps.Copy(newFields, fields)

	return &LogObserver{
		logger:        o.logger,
		contextFields: newFields,
	}
}

// MultiObserver fans events out to several observers.
type MultiObserver []Observer

// Event implements Observer interface.
func (m MultiObserver) Event(event Event) {
	for _, o := range m {
		o.Event(event)
	}
}

// WithFields implements Observer interface.
func (m MultiObserver) WithFields(fields map[string]string) Observer {
	out := make(MultiObserver, len(m))
	for i, o := range m {
		out[i] = o.WithFields(fields)
	}
	return out
}

// MetricsObserver records phase and verification durations.
type MetricsObserver struct {
	recorder *metrics.Recorder
}

// NewMetricsObserver creates an observer feeding r.
func NewMetricsObserver(r *metrics.Recorder) *MetricsObserver {
	return &MetricsObserver{recorder: r}
}

// Event implements Observer interface.
func (o *MetricsObserver) Event(event Event) {
	switch event.Type {
	case EventPhaseCompleted, EventPhaseFailed:
		o.recorder.RecordPhase(event.Phase, event.Duration)
	case EventConnectionVerified:
		o.recorder.RecordVerify(event.Fields["kind"], event.Duration)
	}
}

// WithFields implements Observer interface.
func (o *MetricsObserver) WithFields(map[string]string) Observer {
	return o
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string, index, total int) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: fmt.Sprintf("[%s (%d/%d)] starting", phase, index, total),
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:     EventPhaseCompleted,
		Phase:    phase,
		Duration: duration,
		Message:  fmt.Sprintf("[%s] completed in %v", phase, duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, duration time.Duration, err error) {
	observer.Event(Event{
		Type:     EventPhaseFailed,
		Phase:    phase,
		Duration: duration,
		Message:  fmt.Sprintf("[%s] failed: %v", phase, err),
	})
}

// LogValidationWarning logs a non-fatal finding.
func LogValidationWarning(observer Observer, phase, message string) {
	observer.Event(Event{
		Type:    EventValidationWarning,
		Phase:   phase,
		Message: message,
	})
}

// LogConnectionVerified logs a successful connectivity check.
func LogConnectionVerified(observer Observer, phase string, res *connectivity.Result) {
	fields := map[string]string{
		"kind":        string(res.Kind),
		"endpoint":    res.Endpoint,
		"server_time": res.ServerTime.Format(time.RFC3339),
	}
	if res.Detail != "" {
		fields["detail"] = res.Detail
	}
	observer.Event(Event{
		Type:     EventConnectionVerified,
		Phase:    phase,
		Duration: res.Duration,
		Message:  fmt.Sprintf("%s connection verified", res.Kind.StoreName()),
		Fields:   fields,
	})
}

// LogFileWritten logs the backup, if any, and the write.
func LogFileWritten(observer Observer, phase string, res *envfile.WriteResult) {
	if res.BackedUp {
		observer.Event(Event{
			Type:    EventFileBackedUp,
			Phase:   phase,
			Message: "previous secrets file backed up",
			Fields:  map[string]string{"path": res.BackupPath},
		})
	}
	observer.Event(Event{
		Type:    EventFileWritten,
		Phase:   phase,
		Message: "secrets file written",
		Fields:  map[string]string{"path": res.Path},
	})
}
