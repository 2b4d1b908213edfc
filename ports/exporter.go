package ports

import (
	"context"

	"attest/domain/assessment"
)

// ExporterPort hands a finished AssessmentResult to an external collaborator
// (report generator, metrics exporter, audit store). Export failures surface
// to the caller but never invalidate the already-computed result.
type ExporterPort interface {
	Export(ctx context.Context, result *assessment.AssessmentResult) error
}
