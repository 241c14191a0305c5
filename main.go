package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/game"
	"github.com/pthm-cable/warren/scenario"
	"github.com/pthm-cable/warren/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	inputPath := flag.String("input", "-", "Scenario file to read (- = stdin)")
	outputPath := flag.String("output", "-", "File for the final world (- = stdout)")
	random := flag.Bool("random", false, "Generate the world from the config random section instead of reading input")
	scheduler := flag.String("scheduler", "", "Scheduler: sequential or parallel (empty = use config)")
	workers := flag.Int("workers", -1, "Parallel workers (-1 = use config, 0 = GOMAXPROCS)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Int("log-stats", 0, "Log generation stats every N generations (0 = use config)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	// Set up slog (JSON to stderr; stdout carries the world)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	if *scheduler != "" {
		cfg.Simulation.Scheduler = *scheduler
	}
	if *workers >= 0 {
		cfg.Simulation.Workers = *workers
	}
	if *logStats > 0 {
		cfg.Telemetry.LogEvery = *logStats
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid options", "error", err)
		os.Exit(1)
	}
	cfg.ComputeDerived()

	var setup *scenario.Setup
	if *random {
		setup = scenario.Random(cfg.Random.Seed, cfg.Random.Params(), cfg.Random.Density)
	} else {
		var err error
		setup, err = scenario.LoadFile(*inputPath)
		if err != nil {
			slog.Error("failed to load scenario", "input", *inputPath, "error", err)
			os.Exit(1)
		}
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	opts := game.OptionsFromConfig(cfg)
	opts.Output = om

	sim, err := game.New(setup, opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	defer sim.Close()

	rocks, rabbits, foxes := scenario.Counts(setup.Objects)
	attrs := []any{
		"scheduler", sim.Scheduler(),
		"workers", cfg.Derived.Workers,
		"generations", setup.Params.Generations,
		"rows", setup.Params.Rows,
		"cols", setup.Params.Cols,
		"rocks", rocks,
		"rabbits", rabbits,
		"foxes", foxes,
	}
	if host, err := telemetry.DescribeHost(); err == nil {
		attrs = append(attrs, "host", host)
	}
	if om != nil {
		attrs = append(attrs, "output_dir", om.Dir())
	}
	slog.Info("starting simulation", attrs...)

	if err := sim.Run(); err != nil {
		slog.Error("simulation failed", "generation", sim.Generation(), "error", err)
		os.Exit(1)
	}

	sim.LogSummary()
	if cfg.Telemetry.LogEvery > 0 {
		sim.PerfStats().LogStats()
	}

	objects := sim.Objects()
	if err := om.WriteObjects(objects); err != nil {
		slog.Error("failed to write objects", "error", err)
	}
	if err := scenario.WriteFile(*outputPath, sim.Params(), objects); err != nil {
		slog.Error("failed to write world", "output", *outputPath, "error", err)
		os.Exit(1)
	}
}
