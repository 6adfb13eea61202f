package osuskills

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"osucard-backend/lib/apierr"
	"osucard-backend/lib/restyutil"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://osuskills.com"

const fetchFailedMessage = "Failed to get skills data"

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	// BaseUrl defaults to https://osuskills.com
	BaseUrl string
	// CloudflareBypass wraps the transport so requests look like they come
	// from a browser, osuskills.com sits behind cloudflare.
	CloudflareBypass bool
	// Timeout of a single request, zero leaves the transport default.
	Timeout time.Duration
	// InstrumentOutput may be nil, see restyutil.InstrumentClient.
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	_, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	return &Client{http: client}, nil
}

// GetUserSkills scrapes the skill values, ranks and rank titles of a user.
//
// A failed request returns an error of kind apierr.KindUpstream, a page that
// does not have the expected structure returns apierr.KindScrapeStructure
// wrapping a *ScrapeStructureError.
func (c *Client) GetUserSkills(ctx context.Context, username string) (SkillReport, error) {
	ctx, span := tracer.Start(ctx, "client:GetUserSkills")
	defer span.End()

	span.SetAttributes(attribute.String("username", username))

	res, err := c.http.R().
		SetContext(ctx).
		Get("/user/" + url.PathEscape(username))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch user page")
		return SkillReport{}, apierr.Wrap(apierr.KindUpstream, fetchFailedMessage, err)
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, fmt.Sprintf("unexpected status %s", res.Status()))
		return SkillReport{}, apierr.Wrap(
			apierr.KindUpstream,
			fetchFailedMessage,
			fmt.Errorf("unexpected status %s", res.Status()),
		)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return SkillReport{}, apierr.Wrap(apierr.KindScrapeStructure, "Failed to parse skills page", err)
	}

	report, err := parseSkillReport(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected page structure")
		return SkillReport{}, apierr.Wrap(apierr.KindScrapeStructure, "Unexpected skills page structure", err)
	}

	return report, nil
}
