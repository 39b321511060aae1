package main

import (
	"os"
	"throne-backend/cmd/throne-cli/cmd"
)

func main() {
	// both default to the public endpoints when unset
	cmd.ThroneBaseUrl = os.Getenv("THRONE_BASE_URL")
	cmd.ExchangeBaseUrl = os.Getenv("EXCHANGE_BASE_URL")

	cmd.Execute()
}
