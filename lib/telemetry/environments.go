package telemetry

import (
	"sync"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var (
	testRecorderLock sync.Mutex
	testRecorder     *tracetest.SpanRecorder
)

// sets up telemetry in a testing environment, ensuring that it isn't
// set up more than once. spans are kept in memory so tests never
// depend on a collector being reachable.
func SetupForTesting(t testing.TB, serviceName string) *tracetest.SpanRecorder {
	testRecorderLock.Lock()
	defer testRecorderLock.Unlock()

	InitSlog(testing.Verbose())

	if testRecorder != nil {
		return testRecorder
	}

	r, err := newResource(serviceName)
	if err != nil {
		t.Fatal(err)
	}
	testRecorder = tracetest.NewSpanRecorder()
	otel.SetTracerProvider(trace.NewTracerProvider(
		trace.WithSpanProcessor(testRecorder),
		trace.WithResource(r),
	))
	return testRecorder
}
