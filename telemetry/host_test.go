package telemetry

import (
	"runtime"
	"testing"
)

func TestDescribeHost(t *testing.T) {
	info, err := DescribeHost()
	if err != nil {
		t.Skipf("cpu counts unavailable: %v", err)
	}
	if info.GOMAXPROCS != runtime.GOMAXPROCS(0) {
		t.Errorf("expected GOMAXPROCS %d, got %d", runtime.GOMAXPROCS(0), info.GOMAXPROCS)
	}
	if info.LogicalCores < 0 || info.PhysicalCores < 0 {
		t.Errorf("negative core counts: %+v", info)
	}
}
