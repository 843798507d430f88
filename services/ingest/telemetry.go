package ingest

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("playerbase.services.ingest")
