package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"attest/domain/assessment"
	"attest/domain/core"
	"attest/ports"
)

// ExportJSON serializes a finished result to its canonical JSON document:
// struct fields in declared order, maps by sorted key, two-space indent.
// Identical results always serialize to identical bytes.
func ExportJSON(result *assessment.AssessmentResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrExportFailed, err)
	}
	return data, nil
}

// WriterExporter hands the canonical JSON document to any io.Writer. It is
// the reference ExporterPort implementation; report generators and audit
// stores plug in behind the same port.
type WriterExporter struct {
	W io.Writer
}

// Export writes the canonical document. Failures surface as export errors and
// never invalidate the already-computed result.
func (e WriterExporter) Export(_ context.Context, result *assessment.AssessmentResult) error {
	data, err := ExportJSON(result)
	if err != nil {
		return err
	}
	if _, err := e.W.Write(data); err != nil {
		return fmt.Errorf("%w: %v", core.ErrExportFailed, err)
	}
	return nil
}

var _ ports.ExporterPort = WriterExporter{}
