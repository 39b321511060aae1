package cmd

import (
	"fmt"
	"os"
	"throne-backend/lib/exchange"
	scraper "throne-backend/lib/scrapers/throne"
	"throne-backend/lib/telemetry"
	"throne-backend/services/throne"

	"github.com/spf13/cobra"
)

var ThroneBaseUrl string
var ExchangeBaseUrl string

var service throne.Service
var displayCurrency string

var rootCmd = &cobra.Command{
	Use:   "throne-cli",
	Short: "throne-cli inspects the public gift wishlist of a throne.com creator.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&displayCurrency, "display-currency", "",
		"Re-express USD totals in this ISO-4217 currency.",
	)
}

func Execute() {
	telemetry.InitSlog(false)

	pages := scraper.NewClient(scraper.ClientOptions{BaseUrl: ThroneBaseUrl})
	rates := exchange.NewClient(exchange.ClientOptions{BaseUrl: ExchangeBaseUrl})
	service = throne.NewService(pages, rates)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
