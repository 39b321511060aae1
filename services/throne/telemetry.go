package throne

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("throne.services.throne")
