package main

import (
	"flag"
	"net/http"
	"throne-backend/lib/configutil"
	"throne-backend/lib/exchange"
	scraper "throne-backend/lib/scrapers/throne"
	"throne-backend/lib/serviceutil"
	"throne-backend/services/throne"
	"throne-backend/services/throne/server"
)

const apiVersion = "2.0.1"

type Config struct {
	Port            int    `json:"port"`
	ThroneBaseUrl   string `json:"throne_base_url"`
	ExchangeBaseUrl string `json:"exchange_base_url"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	port := cfg.Port
	if port == 0 {
		port = 8000
	}

	pages := scraper.NewClient(scraper.ClientOptions{BaseUrl: cfg.ThroneBaseUrl})
	rates := exchange.NewClient(exchange.ClientOptions{BaseUrl: cfg.ExchangeBaseUrl})

	mux := http.NewServeMux()
	server.Register(mux, throne.NewService(pages, rates), server.Options{
		Version: apiVersion,
	})

	go serviceutil.StartHttpServer(port, mux)
	<-ctx.Done()
}
