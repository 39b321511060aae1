package exchange

import (
	"context"
	"fmt"
	"throne-backend/lib/restyutil"
	"throne-backend/lib/telemetry"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// RateSource looks up the current exchange rate between two ISO-4217
// currency codes. Codes are expected to be upper-cased by the caller.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// StatusError reports a non-success status from the rate service.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("exchange rate service returned status %d", e.Code)
}

// Client is a RateSource backed by the exchangerate-api.com v4 endpoint.
type Client struct {
	Http *resty.Client
}

type ClientOptions struct {
	// BaseUrl defaults to https://api.exchangerate-api.com/v4/latest
	BaseUrl string
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://api.exchangerate-api.com/v4/latest"
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetTimeout(time.Second * 15)

	telemetry.InstrumentResty(client, "throne.lib.exchange.http")
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{Http: client}
}

type ratesPayload struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (c *Client) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	ctx, span := tracer.Start(ctx, "client:Rate")
	defer span.End()

	var payload ratesPayload
	res, err := c.Http.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(fmt.Sprintf("/%s", from))
	if err != nil {
		return decimal.Zero, err
	}
	if res.StatusCode() != 200 {
		return decimal.Zero, StatusError{Code: res.StatusCode()}
	}

	rate, ok := payload.Rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("no exchange rate published for %s -> %s", from, to)
	}
	return rate, nil
}
