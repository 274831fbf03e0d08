package metrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// ExportTarget says where client metrics go when a command finishes. Empty
// fields are skipped.
type ExportTarget struct {
	// Textfile is written atomically in the text exposition format, for the
	// node_exporter textfile collector.
	Textfile string
	// PushgatewayURL receives the metrics under Job, replacing the previous
	// push of the same job.
	PushgatewayURL string
	Job            string
}

// Enabled reports whether any sink is configured.
func (t ExportTarget) Enabled() bool {
	return t.Textfile != "" || t.PushgatewayURL != ""
}

// Export writes the metrics gathered from g to every configured sink. All
// sinks are attempted; their errors are joined.
func Export(ctx context.Context, g prometheus.Gatherer, target ExportTarget) error {
	var errs []error
	if target.Textfile != "" {
		if err := prometheus.WriteToTextfile(target.Textfile, g); err != nil {
			errs = append(errs, fmt.Errorf("metrics: write textfile: %w", err))
		}
	}
	if target.PushgatewayURL != "" {
		job := target.Job
		if job == "" {
			job = namespace
		}
		if err := push.New(target.PushgatewayURL, job).Gatherer(g).PushContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics: push: %w", err))
		}
	}
	return errors.Join(errs...)
}
