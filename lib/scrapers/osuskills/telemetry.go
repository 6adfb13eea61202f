package osuskills

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("osucard.lib.scrapers.osuskills")
