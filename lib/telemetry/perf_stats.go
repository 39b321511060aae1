package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("throne.perf_stats")

type perfGauges struct {
	cpuUsage     func(ctx context.Context, v float64)
	systemMemory func(ctx context.Context, v int64)
	heapAlloc    func(ctx context.Context, v int64)
	liveObjects  func(ctx context.Context, v int64)
	goroutines   func(ctx context.Context, v int64)
}

func newPerfGauges() perfGauges {
	cpuGauge, _ := meter.Float64Gauge("process_cpu_percent")
	sysMemGauge, _ := meter.Int64Gauge("system_memory_used_mb")
	heapGauge, _ := meter.Int64Gauge("heap_alloc_mb")
	objectsGauge, _ := meter.Int64Gauge("heap_live_objects")
	goroutineGauge, _ := meter.Int64Gauge("goroutines")

	return perfGauges{
		cpuUsage:     func(ctx context.Context, v float64) { cpuGauge.Record(ctx, v) },
		systemMemory: func(ctx context.Context, v int64) { sysMemGauge.Record(ctx, v) },
		heapAlloc:    func(ctx context.Context, v int64) { heapGauge.Record(ctx, v) },
		liveObjects:  func(ctx context.Context, v int64) { objectsGauge.Record(ctx, v) },
		goroutines:   func(ctx context.Context, v int64) { goroutineGauge.Record(ctx, v) },
	}
}

// InstrumentPerfStats samples process and runtime stats every 30 seconds
// until the context is cancelled.
func InstrumentPerfStats(ctx context.Context) {
	gauges := newPerfGauges()

	go func() {
		var memStats runtime.MemStats
		ticker := time.NewTicker(time.Second * 30)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runtime.ReadMemStats(&memStats)

				if usage, err := cpu.Percent(0, false); err == nil && len(usage) > 0 {
					gauges.cpuUsage(ctx, usage[0])
				} else if err != nil {
					slog.WarnContext(ctx, "failed to read cpu usage", "err", err)
				}
				if vm, err := mem.VirtualMemory(); err == nil {
					gauges.systemMemory(ctx, int64(vm.Used/1_000_000))
				}

				gauges.heapAlloc(ctx, int64(memStats.Alloc/1_000_000))
				gauges.liveObjects(ctx, int64(memStats.Mallocs)-int64(memStats.Frees))
				gauges.goroutines(ctx, int64(runtime.NumGoroutine()))
			case <-ctx.Done():
				return
			}
		}
	}()
}
