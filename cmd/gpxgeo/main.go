package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/planbiir/gpxgeo/internal/config"
	"github.com/planbiir/gpxgeo/internal/convert"
	"github.com/planbiir/gpxgeo/internal/gpx"
	"github.com/planbiir/gpxgeo/internal/server"
)

type multiIn []string

func (m *multiIn) String() string     { return strings.Join(*m, ",") }
func (m *multiIn) Set(s string) error { *m = append(*m, s); return nil }

func main() {
	var inputs multiIn
	var (
		outputPath = flag.String("o", "", "Output file, or directory with several inputs (default: next to the input)")
		format     = flag.String("format", "", "Output format: geojson or model (default from config)")
		bbox       = flag.Bool("bbox", false, "Add a bbox member to GeoJSON output")
		indent     = flag.String("indent", "", "JSON indent string (default from config)")
		backend    = flag.String("backend", "", "XML backend: etree or xmlquery (default from config)")
		configPath = flag.String("config", "", "Config file (default: gpxgeo.yml or config/gpxgeo.yml if present)")
		showStats  = flag.Bool("stats", false, "Show document statistics")
		statsJSON  = flag.Bool("stats-json", false, "Output statistics as JSON")
		serve      = flag.Bool("serve", false, "Run the HTTP conversion server")
		addr       = flag.String("addr", "", "Server listen address (default from config)")
		debug      = flag.Bool("debug", false, "Enable debug logging")
		version    = flag.Bool("version", false, "Show version information")
	)
	flag.Var(&inputs, "i", "Input GPX file (repeatable)")

	flag.Usage = func() {
		fmt.Printf("gpxgeo - Convert GPX files to GeoJSON\n\n")
		fmt.Printf("usage: gpxgeo -i /path/to/file.gpx\n\n")
		fmt.Printf("examples:\n")
		fmt.Printf("  gpxgeo -i track.gpx\n")
		fmt.Printf("  gpxgeo -i a.gpx -i b.gpx -o out/ -bbox\n")
		fmt.Printf("  gpxgeo -i track.gpx -format model -stats\n")
		fmt.Printf("  gpxgeo -serve -addr :8080\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Println("gpxgeo v1.0.0 - GPX to GeoJSON converter")
		fmt.Println("https://github.com/planbiir/gpxgeo")
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Explicit flags win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Output.Format = *format
		case "bbox":
			cfg.Output.BBox = *bbox
		case "indent":
			cfg.Output.Indent = *indent
		case "backend":
			cfg.Parser.Backend = *backend
		case "addr":
			cfg.Server.Addr = *addr
		}
	})
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error in options: %v\n", err)
		os.Exit(2)
	}

	log, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if *serve {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("🌐 Serving on %s\n", cfg.Server.Addr)
		if err := server.New(cfg, log).ListenAndServe(ctx); err != nil {
			log.Error("Server stopped", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if len(inputs) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts := convert.OptionsFromConfig(cfg, log)
	jobs, err := planJobs(inputs, *outputPath, cfg.Output.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing output: %v\n", err)
		os.Exit(1)
	}

	var bar *progress
	if len(jobs) > 1 {
		bar = newProgress(len(jobs))
	}

	failed := 0
	for _, job := range jobs {
		if bar == nil {
			fmt.Printf("📖 Reading GPX file: %s\n", job.Input)
		}

		res, err := convertFile(job, opts, cfg.Output.Indent)
		if bar != nil {
			bar.Inc()
		}
		if err != nil {
			failed++
			log.Error("Conversion failed", zap.String("input", job.Input), zap.Error(err))
			continue
		}

		if *statsJSON {
			jsonData, err := json.MarshalIndent(res.Stats, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling stats: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(jsonData))
		} else if *showStats {
			printStats(job.Input, res.Stats)
		}

		if bar == nil {
			fmt.Printf("💾 Wrote %s: %s\n", cfg.Output.Format, job.Output)
		}
	}

	if bar != nil {
		bar.Done()
		fmt.Println()
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "❌ %d of %d files failed\n", failed, len(jobs))
		os.Exit(1)
	}
	fmt.Printf("✅ Converted %d file(s) successfully!\n", len(jobs))
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func printStats(input string, stats gpx.Stats) {
	fmt.Printf("\n📊 %s:\n", input)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("📍 Waypoints: %d\n", stats.Waypoints)
	fmt.Printf("🧭 Routes: %d (%d points, %.2f km)\n",
		stats.Routes, stats.RoutePoints, stats.RouteDistance)
	fmt.Printf("🏃 Tracks: %d (%d points, %.2f km)\n",
		stats.Tracks, stats.TrackPoints, stats.TrackDistance)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}
