package osu

import (
	"context"
	"encoding/base64"
	"fmt"
	"osucard-backend/lib/apierr"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DataURIPrefix = "data:image/png;base64,"

// GetImage downloads an image. Unlike GetUser, failures are not collapsed:
// transport errors and non 2xx statuses are returned with their cause.
func (c *Client) GetImage(ctx context.Context, url string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "client:GetImage")
	defer span.End()

	span.SetAttributes(attribute.String("url", url))

	if strings.HasPrefix(url, ExampleImagePrefix) {
		span.SetAttributes(attribute.Bool("fixture", true))
		return c.exampleImage(url)
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch image")
		return nil, apierr.Wrap(
			apierr.KindTransport,
			fmt.Sprintf("Failed to get image %s", url),
			err,
		)
	}
	if !res.IsSuccess() {
		err := fmt.Errorf("unexpected status %s", res.Status())
		span.SetStatus(codes.Error, err.Error())
		return nil, apierr.Wrap(
			apierr.KindTransport,
			fmt.Sprintf("Failed to get image %s", url),
			err,
		)
	}

	return res.Body(), nil
}

// GetImageBase64 is GetImage encoded as a data uri that can be embedded
// directly in html or svg.
func (c *Client) GetImageBase64(ctx context.Context, url string) (string, error) {
	image, err := c.GetImage(ctx, url)
	if err != nil {
		return "", err
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(image), nil
}
