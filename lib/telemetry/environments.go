package telemetry

import (
	"context"
	"testing"
)

var setupTestEnvironments = map[string]bool{}

// SetupForTesting sets up telemetry in a testing environment, ensuring
// that it isn't set up more than once per service name.
func SetupForTesting(t testing.TB, serviceName string) func() {
	_, setupAlready := setupTestEnvironments[serviceName]
	if setupAlready {
		return func() {}
	}
	setupTestEnvironments[serviceName] = true

	InitSlog(true)
	err := SetupFromEnv(context.Background(), serviceName)
	if err != nil {
		// tests should still run on machines without a telemetry.json5
		t.Logf("telemetry disabled: %s", err)
		return func() {}
	}

	return func() {
		err := Shutdown(context.Background())
		if err != nil {
			t.Fatal(err)
		}
	}
}
