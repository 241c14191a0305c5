package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/scenario"
)

func TestOutputManager_DisabledIsNil(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("expected nil manager when dir is empty")
	}
	// Nil receiver methods are no-ops
	if err := om.WriteGeneration(GenerationStats{}); err != nil {
		t.Errorf("nil WriteGeneration: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestOutputManager_WritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}

	for gen := 1; gen <= 3; gen++ {
		if err := om.WriteGeneration(GenerationStats{Generation: gen, PreyCount: 10 * gen}); err != nil {
			t.Fatalf("writing generation: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{AvgDuration: time.Millisecond}, 3, "sequential"); err != nil {
		t.Fatalf("writing perf: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	objects := []scenario.Object{
		{Kind: components.ObjectRock, Row: 0, Col: 1},
		{Kind: components.ObjectFox, Row: 2, Col: 0},
	}
	if err := om.WriteObjects(objects); err != nil {
		t.Fatalf("writing objects: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	gens, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(gens)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines:\n%s", len(lines), gens)
	}
	if !strings.HasPrefix(lines[0], "generation,prey,pred") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "3,30,") {
		t.Errorf("unexpected last row %q", lines[3])
	}

	objs, err := os.ReadFile(filepath.Join(dir, "objects.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(objs), "ROCK,0,1") || !strings.Contains(string(objs), "FOX,2,0") {
		t.Errorf("objects.csv missing rows:\n%s", objs)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected config snapshot: %v", err)
	}
}
