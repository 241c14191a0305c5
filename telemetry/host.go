package telemetry

import (
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// HostInfo describes the machine a run executed on, so perf output from
// different hosts can be compared.
type HostInfo struct {
	LogicalCores  int
	PhysicalCores int
	Model         string
	GOMAXPROCS    int
}

// DescribeHost queries the CPU layout. Fields that cannot be read are left
// zero; the error is only returned when nothing could be read.
func DescribeHost() (HostInfo, error) {
	info := HostInfo{GOMAXPROCS: runtime.GOMAXPROCS(0)}

	logical, lerr := cpu.Counts(true)
	if lerr == nil {
		info.LogicalCores = logical
	}
	physical, perr := cpu.Counts(false)
	if perr == nil {
		info.PhysicalCores = physical
	}
	if stats, err := cpu.Info(); err == nil && len(stats) > 0 {
		info.Model = stats[0].ModelName
	}

	if lerr != nil && perr != nil {
		return info, lerr
	}
	return info, nil
}

// LogValue implements slog.LogValuer for structured logging.
func (h HostInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("logical_cores", h.LogicalCores),
		slog.Int("physical_cores", h.PhysicalCores),
		slog.String("model", h.Model),
		slog.Int("gomaxprocs", h.GOMAXPROCS),
	)
}
