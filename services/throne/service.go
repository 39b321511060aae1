package throne

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"throne-backend/lib/exchange"
	scraper "throne-backend/lib/scrapers/throne"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Service ties the page scraper and the exchange-rate source together.
// It holds no per-user state: every request builds its record from
// freshly fetched pages, since the upstream page can change at any time.
type Service struct {
	pages *scraper.Client
	rates exchange.RateSource
}

func NewService(pages *scraper.Client, rates exchange.RateSource) Service {
	return Service{
		pages: pages,
		rates: rates,
	}
}

// Converter returns a request-scoped converter that looks up each
// distinct currency pair at most once.
func (s Service) Converter() exchange.Converter {
	return exchange.NewConverter(exchange.NewMemo(s.rates))
}

func (s Service) RawGifted(ctx context.Context, username string) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "service:RawGifted")
	defer span.End()

	return s.pages.GiftedPage(ctx, username)
}

func (s Service) RawWishlist(ctx context.Context, username string) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "service:RawWishlist")
	defer span.End()

	return s.pages.WishlistPage(ctx, username)
}

// Record fetches the two public pages of a creator concurrently and
// assembles the canonical record from them.
func (s Service) Record(ctx context.Context, username string) (*WishlistRecord, error) {
	ctx, span := tracer.Start(ctx, "service:Record")
	defer span.End()

	username = strings.ToLower(username)

	var gifted, wishlist json.RawMessage
	group, fetchCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		gifted, err = s.pages.GiftedPage(fetchCtx, username)
		return err
	})
	group.Go(func() error {
		var err error
		wishlist, err = s.pages.WishlistPage(fetchCtx, username)
		return err
	})
	err := group.Wait()
	if err != nil {
		return nil, err
	}

	return BuildRecord(username, gifted, wishlist)
}

// Probe reports whether the whole pipeline works for the given creator:
// page fetching, extraction, assembly and, when a display currency is
// given, one 1-USD conversion against the live rate source.
func (s Service) Probe(ctx context.Context, username, displayCurrency string) bool {
	ctx, span := tracer.Start(ctx, "service:Probe")
	defer span.End()

	_, err := s.Record(ctx, username)
	if err != nil {
		slog.WarnContext(ctx, "probe failed to build record", "username", username, "err", err)
		return false
	}

	if displayCurrency != "" {
		_, err = s.Converter().Convert(ctx, decimal.NewFromInt(1), "USD", strings.ToUpper(displayCurrency))
		if err != nil {
			slog.WarnContext(ctx, "probe failed to convert", "currency", displayCurrency, "err", err)
			return false
		}
	}
	return true
}
