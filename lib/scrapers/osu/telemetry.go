package osu

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("osucard.lib.scrapers.osu")
