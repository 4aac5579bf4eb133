package observability

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/aws/aws-xray-sdk-go/xray"
)

// Tracer provides X-Ray tracing. A nil or disabled tracer runs functions
// without opening segments, so callers never need to check.
type Tracer struct {
	serviceName string
	enabled     bool
}

// NewTracer creates a new tracer instance
func NewTracer(serviceName string, enabled bool) *Tracer {
	return &Tracer{
		serviceName: serviceName,
		enabled:     enabled,
	}
}

// Enabled reports whether segments are recorded
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

// InstrumentAWS adds X-Ray middleware to every client built from cfg
func (t *Tracer) InstrumentAWS(cfg *aws.Config) {
	if t.Enabled() {
		awsv2.AWSV2Instrumentor(&cfg.APIOptions)
	}
}

// TraceFunction wraps a function in a subsegment
func (t *Tracer) TraceFunction(ctx context.Context, name string, fn func(context.Context) error) error {
	if !t.Enabled() {
		return fn(ctx)
	}

	ctx, seg := xray.BeginSubsegment(ctx, fmt.Sprintf("%s.%s", t.serviceName, name))
	if seg == nil {
		return fn(ctx)
	}

	err := fn(ctx)
	seg.Close(err)

	return err
}

// AddAnnotation adds an indexed annotation to the current segment
func (t *Tracer) AddAnnotation(ctx context.Context, key string, value string) {
	if !t.Enabled() {
		return
	}
	if seg := xray.GetSegment(ctx); seg != nil {
		seg.AddAnnotation(key, value)
	}
}
