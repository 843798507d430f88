package wikipedia

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("playerbase.lib.scrapers.wikipedia")
