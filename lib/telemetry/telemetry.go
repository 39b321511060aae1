package telemetry

import (
	"context"
	"errors"
	"throne-backend/lib/configutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
)

type Telemetry struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

var instance Telemetry

// Shutdown flushes and stops the providers set up by Setup. It is safe to
// call when Setup was never called.
func Shutdown(ctx context.Context) error {
	errlist := []error{}
	if instance.TracerProvider != nil {
		err := instance.TracerProvider.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	if instance.MeterProvider != nil {
		err := instance.MeterProvider.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	return errors.Join(errlist...)
}

// SetupFromEnv searches up the filesystem from the cwd to find a file
// called telemetry.json5, once found it will then use it as a config to
// setup telemetry.
func SetupFromEnv(ctx context.Context, serviceName string) error {
	config, err := configutil.ReadRecursively[Config]("telemetry.json5")
	if err != nil {
		return err
	}
	return Setup(ctx, serviceName, config)
}

func Setup(ctx context.Context, serviceName string, config Config) error {
	r, err := newResource(serviceName)
	if err != nil {
		return err
	}

	tracerProvider, err := newTraceProvider(ctx, r, config)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(tracerProvider)

	meterProvider, err := newMetricProvider(ctx, r, config)
	if err != nil {
		return err
	}
	otel.SetMeterProvider(meterProvider)

	instance = Telemetry{
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
	}
	return nil
}
