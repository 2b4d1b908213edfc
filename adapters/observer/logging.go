package observer

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"

	"attest/domain/assessment"
	"attest/ports"
)

// LoggingObserver emits structured progress events as the run advances. It
// only observes; it never changes scores or ordering.
type LoggingObserver struct {
	log *slog.Logger
}

// New wraps an existing logger.
func New(log *slog.Logger) *LoggingObserver {
	return &LoggingObserver{log: log}
}

// NewTint builds an observer with a colorized terminal handler.
func NewTint(w io.Writer, level slog.Level) *LoggingObserver {
	return New(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))
}

func (o *LoggingObserver) TestCompleted(tr assessment.TestResult) {
	attrs := []any{
		"test", tr.Name,
		"dimension", tr.Dimension,
		"score", tr.Normalized(),
		"attempts", tr.Attempts,
		"duration", tr.Duration,
	}
	switch {
	case tr.TimedOut:
		o.log.Warn("test timed out", attrs...)
	case tr.Error != "":
		o.log.Warn("test failed", append(attrs, "error", tr.Error)...)
	default:
		o.log.Info("test completed", attrs...)
	}
}

func (o *LoggingObserver) DimensionAggregated(ds assessment.DimensionScore) {
	o.log.Info("dimension aggregated",
		"dimension", ds.Dimension,
		"score", ds.Score,
		"status", ds.Status,
		"passed", ds.Metrics.TestsPassed,
		"failed", ds.Metrics.TestsFailed,
	)
}

func (o *LoggingObserver) RunFinished(result *assessment.AssessmentResult) {
	o.log.Info("assessment finished",
		"assessment_id", result.AssessmentID,
		"system", result.SystemName,
		"composite", result.CompositeScore,
		"level", result.Level.Name,
		"audit_status", result.AuditStatus,
		"safe_for_deployment", result.SafeForDeployment,
		"recommendations", len(result.Recommendations),
	)
}

var _ ports.RunObserver = (*LoggingObserver)(nil)
