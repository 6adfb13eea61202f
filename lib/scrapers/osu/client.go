package osu

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"osucard-backend/lib/restyutil"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultServer     = "osu.ppy.sh"
	DefaultFixtureDir = "assets/example"
)

// Client talks to the osu! website, or any private server exposing the same
// routes. It holds no per-call state and is safe for concurrent use.
type Client struct {
	http       *resty.Client
	scheme     string
	fixtureDir string
}

type ClientOptions struct {
	// Scheme used to build profile urls, defaults to https.
	Scheme string
	// FixtureDir holds the bundled example assets, relative paths are
	// resolved against the working directory. Defaults to assets/example.
	FixtureDir string
	// Timeout of a single request, zero leaves the transport default.
	Timeout time.Duration
	// InstrumentOutput receives a dump of every http exchange when debug
	// logging is enabled, it may be nil.
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) (*Client, error) {
	scheme := opts.Scheme
	if scheme == "" {
		scheme = "https"
	}

	fixtureDir := opts.FixtureDir
	if fixtureDir == "" {
		fixtureDir = DefaultFixtureDir
	}
	if !filepath.IsAbs(fixtureDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		fixtureDir = filepath.Join(cwd, fixtureDir)
	}

	client := resty.New()
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	return &Client{
		http:       client,
		scheme:     scheme,
		fixtureDir: fixtureDir,
	}, nil
}

// fetchJSON performs a GET and decodes the body as json. Any failure,
// transport or decoding, collapses into ok = false. The status code is not
// checked, an error page is only absent if it fails to decode.
func (c *Client) fetchJSON(ctx context.Context, url string) (any, bool) {
	span := trace.SpanFromContext(ctx)

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		slog.DebugContext(ctx, "fetch failed", "url", url, "err", err)
		return nil, false
	}

	var data any
	err = json.Unmarshal(res.Body(), &data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode json")
		slog.DebugContext(ctx, "fetch returned invalid json", "url", url, "status", res.StatusCode(), "err", err)
		return nil, false
	}
	return data, true
}
