package throne

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"throne-backend/lib/htmlutil"
	"throne-backend/lib/restyutil"
	"throne-backend/lib/telemetry"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// ErrNoEmbeddedData is returned when a throne.com page no longer carries
// the embedded data blob the scraper relies on.
var ErrNoEmbeddedData = fmt.Errorf("throne.com has removed the embedded wishlist data from their page")

// StatusError reports a non-success status from throne.com.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("throne.com returned status %d", e.Code)
}

type Client struct {
	Http *resty.Client
}

type ClientOptions struct {
	// BaseUrl defaults to https://throne.com
	BaseUrl string
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://throne.com"
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "throne.lib.scrapers.throne.http")
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{Http: client}
}

// GiftedPage fetches the public gifters page of a creator and returns the
// embedded data blob.
func (c *Client) GiftedPage(ctx context.Context, username string) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "client:GiftedPage")
	defer span.End()

	return c.fetchPage(ctx, fmt.Sprintf("/%s/gifters", strings.ToLower(username)))
}

// WishlistPage fetches the public wishlist page of a creator and returns
// the embedded data blob.
func (c *Client) WishlistPage(ctx context.Context, username string) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "client:WishlistPage")
	defer span.End()

	return c.fetchPage(ctx, fmt.Sprintf("/%s", strings.ToLower(username)))
}

func (c *Client) fetchPage(ctx context.Context, path string) (json.RawMessage, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != 200 {
		return nil, StatusError{Code: res.StatusCode()}
	}
	return ExtractNextData(ctx, res.Body())
}

// ExtractNextData pulls the JSON blob out of the `__NEXT_DATA__` script
// tag of a throne.com page.
func ExtractNextData(ctx context.Context, page []byte) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "ExtractNextData")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(page))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	for _, script := range doc.Find(`script#__NEXT_DATA__`).Nodes {
		text := strings.TrimSpace(htmlutil.GetText(script))
		if text == "" {
			continue
		}
		if !json.Valid([]byte(text)) {
			span.SetStatus(codes.Error, "embedded data blob is not valid json")
			return nil, ErrNoEmbeddedData
		}
		return json.RawMessage(text), nil
	}

	span.SetStatus(codes.Error, "no embedded data blob found")
	return nil, ErrNoEmbeddedData
}
