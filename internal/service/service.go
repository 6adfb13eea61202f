package service

import (
	"net/http"
	"osucard-backend/internal/assert"
	"osucard-backend/internal/telemetry"
	"osucard-backend/lib/scrapers/osu"
	"osucard-backend/lib/scrapers/osuskills"
	"osucard-backend/lib/skillstore"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_user_get        = "user.get"
	report_skills_get      = "skills.get"
	report_skills_history  = "skills.history"
	report_image_get       = "image.get"
	report_store_push      = "store.push"
	report_response_encode = "response.encode"
)

// Service exposes the osu and osuskills clients over http as json.
type Service struct {
	osu     *osu.Client
	skills  *osuskills.Client
	store   *skillstore.Store
	timeout time.Duration
	now     func() time.Time
	tel     telemetry.API
	traces  trace.TracerProvider
}

type serviceConfig struct {
	store   *skillstore.Store
	timeout time.Duration
	now     func() time.Time
	tel     telemetry.API
	traces  trace.TracerProvider
}

type Option func(cfg *serviceConfig)

// WithStore records every successfully scraped skill report.
func WithStore(store skillstore.Store) Option {
	return func(cfg *serviceConfig) {
		cfg.store = &store
	}
}

// WithRequestTimeout bounds the time spent on a single incoming request.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(cfg *serviceConfig) {
		cfg.timeout = timeout
	}
}

func WithClock(now func() time.Time) Option {
	return func(cfg *serviceConfig) {
		cfg.now = now
	}
}

func WithTelemetry(tel telemetry.API) Option {
	return func(cfg *serviceConfig) {
		cfg.tel = tel
	}
}

// WithTracerProvider sets where request spans go, the global provider is
// used otherwise.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(cfg *serviceConfig) {
		cfg.traces = provider
	}
}

func NewService(osuClient *osu.Client, skillsClient *osuskills.Client, options ...Option) Service {
	assert.NotNil(osuClient, "osu client")
	assert.NotNil(skillsClient, "osuskills client")

	cfg := serviceConfig{
		now: time.Now,
		tel: telemetry.SlogAPI{},
	}
	for _, opt := range options {
		opt(&cfg)
	}

	return Service{
		osu:     osuClient,
		skills:  skillsClient,
		store:   cfg.store,
		timeout: cfg.timeout,
		now:     cfg.now,
		tel:     telemetry.NewScopedAPI("service", cfg.tel),
		traces:  cfg.traces,
	}
}

// Handler routes:
//
//	GET /user/{username}?server=&mode=
//	GET /skills/{username}
//	GET /skills/{username}/history
//	GET /image?url=&encoding=base64
func (s Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/{username}", s.withTimeout(s.handleUser))
	mux.HandleFunc("GET /skills/{username}", s.withTimeout(s.handleSkills))
	mux.HandleFunc("GET /skills/{username}/history", s.withTimeout(s.handleSkillsHistory))
	mux.HandleFunc("GET /image", s.withTimeout(s.handleImage))

	tracerProvider := s.traces
	if tracerProvider == nil {
		tracerProvider = otel.GetTracerProvider()
	}
	// every request gets a server span, outgoing resty spans are its children
	return otelhttp.NewHandler(
		mux,
		"osucard-server",
		otelhttp.WithTracerProvider(tracerProvider),
		otelhttp.WithSpanNameFormatter(spanName),
	)
}

// spanName keeps span names low cardinality, "/user/peppy" becomes
// "GET /user".
func spanName(_ string, r *http.Request) string {
	route, _, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	return r.Method + " /" + route
}
