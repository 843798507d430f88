package wikipedia

import (
	"context"
	"fmt"
	"log/slog"
	"playerbase/lib/restyutil"
	"playerbase/lib/telemetry"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

// FetchError is returned when a page could not be retrieved, either
// because the request failed (Err is set) or the server answered with
// a non-2xx status.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Err.Error())
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	UserAgent string
	// defaults to 30 seconds
	Timeout time.Duration
	// when set, every response is written to it
	Dump restyutil.Output
}

func NewClient(opts ClientOptions) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(client, "playerbase.lib.scrapers.wikipedia/http")
	restyutil.DumpResponses(client, opts.Dump)

	return &Client{http: client}
}

// Fetch returns the raw markup of the page at url.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", &FetchError{URL: url, Err: err}
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, res.Status())
		return "", &FetchError{URL: url, Status: res.StatusCode()}
	}

	slog.DebugContext(ctx, "fetched page", "url", url, "size", len(res.Body()))
	return string(res.Body()), nil
}
